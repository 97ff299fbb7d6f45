// Package reader turns a stream of object-file bytes into LC-3b words.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artemijrodionov/lc3b/lc3b/inst"
)

var ErrTruncatedInput = errors.New("input ends in the middle of a word")

// IOError reports a failure of the underlying medium.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read failed: %s", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func scanTwoBytes(data []byte, atEOF bool) (advance int, token []byte, err error) {
	switch {
	case len(data) >= 2:
		return 2, data[0:2], nil
	case atEOF && len(data) == 0:
		return 0, nil, nil
	case atEOF:
		return 0, nil, ErrTruncatedInput
	default:
		return 0, nil, nil
	}
}

// Order selects how the two bytes of a word are assembled.
type Order string

const (
	// LittleEndian puts the first byte read in the low lane.
	LittleEndian Order = "little"
	BigEndian    Order = "big"
)

var orders = []Order{LittleEndian, BigEndian}

func (o Order) String() string {
	return string(o)
}

func (o *Order) Set(s string) error {
	for _, known := range orders {
		if known.String() == s {
			*o = known
			return nil
		}
	}
	return fmt.Errorf("can't find byte order %q, expected one of %s", s, OrderNames())
}

func OrderNames() string {
	result := make([]string, len(orders))
	for i, o := range orders {
		result[i] = string(o)
	}
	return strings.Join(result, ", ")
}

func (o Order) word(first, second byte) inst.Word {
	if o == BigEndian {
		return inst.NewWord(first, second)
	}
	return inst.NewWord(second, first)
}

// Reader yields one word per call to Next.
type Reader struct {
	scanner *bufio.Scanner
	order   Order
	word    inst.Word
	err     error
}

func New(r io.Reader, order Order) *Reader {
	scanner := bufio.NewScanner(bufio.NewReader(r))
	scanner.Split(scanTwoBytes)
	if order != BigEndian {
		order = LittleEndian
	}
	return &Reader{scanner: scanner, order: order}
}

// Next advances to the following word. It returns false at the end of the
// input or on the first error; Err tells the two apart.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			if errors.Is(err, ErrTruncatedInput) {
				r.err = err
			} else {
				r.err = &IOError{Err: err}
			}
		}
		return false
	}
	b := r.scanner.Bytes()
	r.word = r.order.word(b[0], b[1])
	return true
}

func (r *Reader) Word() inst.Word {
	return r.word
}

// Err returns nil when the input ended cleanly.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll collects every word of r.
func ReadAll(r io.Reader, order Order) ([]inst.Word, error) {
	var words []inst.Word
	wr := New(r, order)
	for wr.Next() {
		words = append(words, wr.Word())
	}
	return words, wr.Err()
}
