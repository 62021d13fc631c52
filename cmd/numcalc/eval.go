package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	num "github.com/fixedwidth/go-num"
	"github.com/fixedwidth/go-num/nummath"
	"github.com/rs/zerolog"
)

var (
	ErrStack        = errors.New("numcalc: stack")
	ErrEmptyExpr    = errors.New("numcalc: empty expression")
	errPanicNoError = errors.New("numcalc: evaluation panicked")
)

// Result is one evaluated expression. Value holds the number itself so it
// can be dumped.
type Result struct {
	Text  string
	Value any
}

type Evaluator interface {
	Eval(expr string) (Result, error)
}

var registry = map[string]func(name string, log zerolog.Logger) Evaluator{
	"u64":   uintCalc[[1]uint64],
	"u128":  uintCalc[[2]uint64],
	"u192":  uintCalc[[3]uint64],
	"u256":  uintCalc[[4]uint64],
	"u384":  uintCalc[[6]uint64],
	"u512":  uintCalc[[8]uint64],
	"u768":  uintCalc[[12]uint64],
	"u1024": uintCalc[[16]uint64],
	"u2048": uintCalc[[32]uint64],

	"i64":   intCalc[[1]uint64],
	"i128":  intCalc[[2]uint64],
	"i192":  intCalc[[3]uint64],
	"i256":  intCalc[[4]uint64],
	"i384":  intCalc[[6]uint64],
	"i512":  intCalc[[8]uint64],
	"i768":  intCalc[[12]uint64],
	"i1024": intCalc[[16]uint64],
	"i2048": intCalc[[32]uint64],

	"f16":  floatCalc[num.Binary16],
	"f32":  floatCalc[num.Binary32],
	"f64":  floatCalc[num.Binary64],
	"f128": floatCalc[num.Binary128],
	"f256": floatCalc[num.Binary256],
	"d64":  floatCalc[num.Decimal64],
	"d128": floatCalc[num.Decimal128],

	"extended": func(name string, log zerolog.Logger) Evaluator {
		return newCalculator(name, func(s string) (num.Extended, error) {
			return num.ExtendedFromString(s, 0)
		}, log)
	},
}

func typeNames() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func newEvaluator(typ string, log zerolog.Logger) (Evaluator, error) {
	mk, ok := registry[typ]
	if !ok {
		return nil, fmt.Errorf("numcalc: unknown type %q", typ)
	}
	return mk(typ, log.With().Str("type", typ).Logger()), nil
}

func uintCalc[L num.Limbs](name string, log zerolog.Logger) Evaluator {
	return newCalculator(name, num.UintFromString[L], log)
}

func intCalc[L num.Limbs](name string, log zerolog.Logger) Evaluator {
	return newCalculator(name, num.IntFromString[L], log)
}

func floatCalc[F num.Format](name string, log zerolog.Logger) Evaluator {
	return newCalculator(name, num.FloatFromString[F], log)
}

// calculator evaluates postfix expressions over a single number type.
type calculator[T nummath.Number[T]] struct {
	name   string
	parse  func(string) (T, error)
	log    zerolog.Logger
	consts map[string]func() T
	unary  map[string]func(T) T
	binary map[string]func(T, T) T
}

func newCalculator[T nummath.Number[T]](name string, parse func(string) (T, error), log zerolog.Logger) *calculator[T] {
	return &calculator[T]{
		name:  name,
		parse: parse,
		log:   log,
		consts: map[string]func() T{
			"pi":  nummath.Pi[T],
			"ln2": nummath.Ln2[T],
		},
		unary: map[string]func(T) T{
			"neg":   neg[T],
			"abs":   nummath.Abs[T],
			"sqrt":  nummath.Sqrt[T],
			"exp":   nummath.Exp[T],
			"exp2":  nummath.Exp2[T],
			"exp10": nummath.Exp10[T],
			"log":   nummath.Log[T],
			"log2":  nummath.Log2[T],
			"log10": nummath.Log10[T],
			"sin":   nummath.Sin[T],
			"cos":   nummath.Cos[T],
			"tan":   nummath.Tan[T],
			"asin":  nummath.Asin[T],
			"acos":  nummath.Acos[T],
			"atan":  nummath.Atan[T],
			"sinh":  nummath.Sinh[T],
			"cosh":  nummath.Cosh[T],
			"tanh":  nummath.Tanh[T],
			"asinh": nummath.Asinh[T],
			"acosh": nummath.Acosh[T],
			"atanh": nummath.Atanh[T],
		},
		binary: map[string]func(T, T) T{
			"+":     func(x, y T) T { return x.Add(y) },
			"-":     func(x, y T) T { return x.Sub(y) },
			"*":     func(x, y T) T { return x.Mul(y) },
			"/":     func(x, y T) T { return x.Quo(y) },
			"^":     nummath.Pow[T],
			"pow":   nummath.Pow[T],
			"hypot": nummath.Hypot[T],
			"max": func(x, y T) T {
				if y.Cmp(x) > 0 {
					return y
				}
				return x
			},
			"min": func(x, y T) T {
				if y.Cmp(x) < 0 {
					return y
				}
				return x
			},
		},
	}
}

// neg negates x. Unsigned types have no Neg, so they wrap through zero.
func neg[T nummath.Number[T]](x T) T {
	if n, ok := any(x).(interface{ Neg() T }); ok {
		return n.Neg()
	}
	return x.FromInt64(0).Sub(x)
}

// Eval evaluates a whitespace separated postfix expression. Integer
// division by zero and integer domain errors are returned as errors rather
// than panicking.
func (c *calculator[T]) Eval(expr string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				perr = fmt.Errorf("%w: %v", errPanicNoError, r)
			}
			err = fmt.Errorf("numcalc: %s %q: %w", c.name, expr, perr)
		}
	}()

	var stack []T
	pop := func(tok string, n int) ([]T, error) {
		if len(stack) < n {
			return nil, fmt.Errorf("%w: %q needs %d operands, have %d", ErrStack, tok, n, len(stack))
		}
		args := stack[len(stack)-n:]
		stack = stack[:len(stack)-n]
		return args, nil
	}

	for _, tok := range strings.Fields(expr) {
		word := strings.ToLower(tok)
		switch {
		case word == "dup":
			if len(stack) == 0 {
				return res, fmt.Errorf("%w: dup on empty stack", ErrStack)
			}
			stack = append(stack, stack[len(stack)-1])

		case word == "swap":
			args, err := pop(word, 2)
			if err != nil {
				return res, err
			}
			x, y := args[0], args[1]
			stack = append(stack, y, x)

		case word == "drop":
			if _, err := pop(word, 1); err != nil {
				return res, err
			}

		case c.consts[word] != nil:
			stack = append(stack, c.consts[word]())

		case c.unary[word] != nil:
			args, err := pop(word, 1)
			if err != nil {
				return res, err
			}
			stack = append(stack, c.unary[word](args[0]))

		case c.binary[word] != nil:
			args, err := pop(word, 2)
			if err != nil {
				return res, err
			}
			stack = append(stack, c.binary[word](args[0], args[1]))

		default:
			v, err := c.parse(tok)
			if err != nil {
				return res, fmt.Errorf("numcalc: %s: %w", c.name, err)
			}
			stack = append(stack, v)
		}

		c.log.Debug().Str("token", tok).Int("depth", len(stack)).Msg("step")
	}

	switch len(stack) {
	case 0:
		return res, ErrEmptyExpr
	case 1:
		v := stack[0]
		return Result{Text: fmt.Sprint(v), Value: v}, nil
	default:
		return res, fmt.Errorf("%w: %d values left over", ErrStack, len(stack))
	}
}
