package tools

import (
	"errors"
	"fmt"
	"time"
)

// PatternError is returned when a pattern is not valid syntax for the regex engine.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// ScanTimeoutError is returned when a backtracking engine ran out of its time budget.
type ScanTimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *ScanTimeoutError) Error() string {
	return fmt.Sprintf("pattern scan did not complete within %v", e.Timeout)
}

func (e *ScanTimeoutError) Unwrap() error {
	return e.Err
}

// EncodingError is returned when a percent-encoded value could not be decoded.
type EncodingError struct {
	Offset int // Byte offset in the encoded input where the problem was found.
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("malformed URL encoding at offset %d: %s", e.Offset, e.Reason)
}

// TemporalParseError is returned when a date-time or time value could not be parsed.
type TemporalParseError struct {
	Field string
	Value string
	Err   error
}

func (e *TemporalParseError) Error() string {
	return fmt.Sprintf("could not parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *TemporalParseError) Unwrap() error {
	return e.Err
}

// BodyParseError is returned when a request body could not be parsed into a request message.
type BodyParseError struct {
	ContentType string
	Err         error
}

func (e *BodyParseError) Error() string {
	return fmt.Sprintf("%s body parsing error: %v", e.ContentType, e.Err)
}

func (e *BodyParseError) Unwrap() error {
	return e.Err
}

// ErrUnsupportedContentType is returned when the request body is of a type that cannot be parsed.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// ErrFieldBytesLimitExceeded is returned when a single request body field was longer than the limit.
var ErrFieldBytesLimitExceeded = errors.New("field length limit exceeded")

// ErrPausableBytesLimitExceeded is returned when the request body, excluding file upload fields, was longer than the limit.
var ErrPausableBytesLimitExceeded = errors.New("request length limit exceeded")

// ErrTotalBytesLimitExceeded is returned when the total request body length limit was exceeded.
var ErrTotalBytesLimitExceeded = errors.New("total request length limit exceeded")

// IsClientError tells whether err was caused by the input of the request rather than by the service.
func IsClientError(err error) bool {
	var pe *PatternError
	var ee *EncodingError
	var te *TemporalParseError
	var ste *ScanTimeoutError
	var bpe *BodyParseError
	return errors.As(err, &pe) || errors.As(err, &ee) || errors.As(err, &te) || errors.As(err, &ste) || errors.As(err, &bpe) || IsLengthLimitError(err)
}

// IsLengthLimitError tells whether err is one of the body length limit errors.
func IsLengthLimitError(err error) bool {
	return errors.Is(err, ErrFieldBytesLimitExceeded) || errors.Is(err, ErrPausableBytesLimitExceeded) || errors.Is(err, ErrTotalBytesLimitExceeded)
}
