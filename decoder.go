package num

import (
	"bufio"
	"encoding"
	"errors"
	"io"
	"unicode"
	"unicode/utf8"
)

// Decoder reads whitespace-separated numbers from a stream into any of the
// types in this package.
//
// Failure is sticky: once a token fails to convert, or the reader returns an
// error, every later Decode returns that same error without consuming input
// until Clear is called. A token that failed to convert has already been
// consumed, so clearing resumes with the next one.
type Decoder struct {
	rdr *bufio.Reader
	err error
	buf []byte
}

func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{rdr: br}
}

// Decode reads the next token into v. It returns io.EOF once the stream is
// exhausted.
func (d *Decoder) Decode(v encoding.TextUnmarshaler) error {
	if d.err != nil {
		return d.err
	}
	tok, err := d.token()
	if err != nil {
		d.err = err
		return err
	}
	if err := v.UnmarshalText(tok); err != nil {
		d.err = err
		return err
	}
	return nil
}

// Err returns the sticky error, if any.
func (d *Decoder) Err() error { return d.err }

// Failed reports whether a conversion has failed since the last Clear. End
// of stream is not a failure.
func (d *Decoder) Failed() bool {
	return d.err != nil && !errors.Is(d.err, io.EOF)
}

// Clear resets the sticky error.
func (d *Decoder) Clear() { d.err = nil }

func (d *Decoder) token() ([]byte, error) {
	d.buf = d.buf[:0]
	for {
		r, sz, err := d.rdr.ReadRune()
		if err != nil {
			if err == io.EOF && len(d.buf) > 0 {
				return d.buf, nil
			}
			return nil, err
		}
		if unicode.IsSpace(r) {
			if len(d.buf) > 0 {
				return d.buf, nil
			}
			continue
		}
		if r == utf8.RuneError && sz == 1 {
			d.buf = append(d.buf, 0xFF)
			continue
		}
		d.buf = utf8.AppendRune(d.buf, r)
	}
}
