package num

import (
	"math/big"
)

const (
	maxUint64 = 1<<64 - 1
	signBit   = 0x8000000000000000

	intSize = 32 << (^uint(0) >> 63)
)

// Fixed widths. The array length is the number of 64-bit words.
type (
	U64   = Uint[[1]uint64]
	U128  = Uint[[2]uint64]
	U192  = Uint[[3]uint64]
	U256  = Uint[[4]uint64]
	U384  = Uint[[6]uint64]
	U512  = Uint[[8]uint64]
	U768  = Uint[[12]uint64]
	U1024 = Uint[[16]uint64]
	U2048 = Uint[[32]uint64]

	I64   = Int[[1]uint64]
	I128  = Int[[2]uint64]
	I192  = Int[[3]uint64]
	I256  = Int[[4]uint64]
	I384  = Int[[6]uint64]
	I512  = Int[[8]uint64]
	I768  = Int[[12]uint64]
	I1024 = Int[[16]uint64]
	I2048 = Int[[32]uint64]
)

type (
	Float16  = Float[Binary16]
	Float32  = Float[Binary32]
	Float64  = Float[Binary64]
	Float128 = Float[Binary128]
	Float256 = Float[Binary256]
	Dec64    = Float[Decimal64]
	Dec128   = Float[Decimal128]
)

var (
	big0  = new(big.Int)
	big1  = big.NewInt(1)
	big2  = big.NewInt(2)
	big10 = big.NewInt(10)
)
