package encoding

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrPairTooLong is returned by FormPairReader.Next when a pair is longer than MaxPairLength.
var ErrPairTooLong = errors.New("form pair longer than the limit")

// FormPairReader splits an application/x-www-form-urlencoded stream into its raw key-value pairs. Keys and values are returned still escaped.
type FormPairReader struct {
	// MaxPairLength is the most bytes a single pair may have, not counting the '&' separator. Zero means no limit.
	MaxPairLength int

	r    *bufio.Reader
	done bool
}

// NewFormPairReader creates a FormPairReader reading from r.
func NewFormPairReader(r io.Reader) *FormPairReader {
	return &FormPairReader{r: bufio.NewReaderSize(r, 1000)}
}

// Next returns the next pair. A pair without '=' gives the whole pair as key and an empty value. Returns io.EOF when there are no more pairs.
func (d *FormPairReader) Next() (key string, val string, err error) {
	if d.done {
		err = io.EOF
		return
	}

	var pair []byte
	for {
		chunk, readErr := d.r.ReadSlice('&')
		pair = append(pair, chunk...)
		if readErr == nil {
			pair = pair[:len(pair)-1]
		}

		// Checked on every chunk, so a pair is never buffered much beyond the limit.
		if d.MaxPairLength > 0 && len(pair) > d.MaxPairLength {
			err = ErrPairTooLong
			return
		}

		switch {
		case readErr == bufio.ErrBufferFull:
			continue
		case readErr == io.EOF:
			d.done = true
			if len(pair) == 0 {
				err = io.EOF
				return
			}
		case readErr != nil:
			err = readErr
			return
		}

		key, val, _ = strings.Cut(string(pair), "=")
		return
	}
}
