package bodyparsing

import (
	"io"

	"webtools/tools"
)

// limitedBodyReader is an io.Reader decorator which enforces the tools.LengthLimits on a request body.
type limitedBodyReader struct {
	limits tools.LengthLimits
	reader io.Reader

	// Bytes read while PauseCounting is set count only towards the total limit. Used for file parts of multipart bodies, which are skipped.
	PauseCounting bool

	// Set when the parser checks the field limit itself. Bytes then count only towards the pausable and total limits.
	SkipFieldCount bool

	fieldCount    int
	pausableCount int
	totalCount    int
	lastErr       error
}

func newLimitedBodyReader(reader io.Reader, limits tools.LengthLimits) *limitedBodyReader {
	return &limitedBodyReader{reader: reader, limits: limits}
}

// Read behaves like io.Reader.Read, but returns a limit error on the call after the call where a limit was reached.
func (m *limitedBodyReader) Read(p []byte) (n int, err error) {
	defer func() {
		if err != nil {
			m.lastErr = err
		}
	}()

	switch {
	case m.totalCount >= m.limits.MaxLengthTotal:
		err = tools.ErrTotalBytesLimitExceeded
		return
	case m.pausableCount >= m.limits.MaxLengthPausable:
		err = tools.ErrPausableBytesLimitExceeded
		return
	case m.fieldCount >= m.limits.MaxLengthField:
		err = tools.ErrFieldBytesLimitExceeded
		return
	}

	n, err = m.reader.Read(p)
	m.totalCount += n
	if !m.PauseCounting {
		m.pausableCount += n
		if !m.SkipFieldCount {
			m.fieldCount += n
		}
	}

	return
}

// StartField is called before reading a new field, and resets the count of bytes read for the current field.
func (m *limitedBodyReader) StartField() {
	m.fieldCount = 0
}

// limitErr gives the limit error the reader ran into, if any. Parsers like mime/multipart wrap the errors of the underlying reader, so the error they return cannot be compared directly.
func (m *limitedBodyReader) limitErr() error {
	if tools.IsLengthLimitError(m.lastErr) {
		return m.lastErr
	}
	return nil
}
