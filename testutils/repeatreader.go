package testutils

import (
	"io"
)

// RepeatReader is an io.Reader that repeats Content until exactly Length bytes have been read. Useful for building large request bodies without holding them in memory.
type RepeatReader struct {
	Length  int
	Content []byte
	pos     int
}

func (m *RepeatReader) Read(p []byte) (n int, err error) {
	if len(m.Content) == 0 {
		m.Content = []byte("a")
	}

	for n < len(p) && m.pos < m.Length {
		i := m.pos % len(m.Content)
		c := copy(p[n:], m.Content[i:])
		if m.pos+c > m.Length {
			c = m.Length - m.pos
		}
		n += c
		m.pos += c
	}

	if m.pos >= m.Length {
		err = io.EOF
	}

	return
}
