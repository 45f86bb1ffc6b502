package tools

import (
	"io"

	"github.com/rs/zerolog"
)

// RequestBodyParser parses HTTP request bodies into request messages.
type RequestBodyParser interface {
	Parse(logger zerolog.Logger, req RequestBody, target BodyTarget) error
	LengthLimits() LengthLimits
}

// RequestBody is the part of an HTTP request that RequestBodyParser needs.
type RequestBody interface {
	ContentType() string
	ContentLength() int64 // -1 if unknown.
	BodyReader() io.Reader
}

// BodyTarget is a request message that a body can be parsed into.
// JSON bodies are unmarshalled into the target itself, so it must be a pointer to a struct. Form bodies are assigned one field at a time.
type BodyTarget interface {
	SetFormField(key string, value string) error
}

// LengthLimits states limitations we will enforce regarding the lengths of different parts of the request body.
type LengthLimits struct {
	MaxLengthField    int // Number of bytes in a single form field before returning an error.
	MaxLengthPausable int // Number of bytes read before returning an error, not counting file upload parts of multipart bodies.
	MaxLengthTotal    int // Number of bytes read, including file upload parts.
}

// DefaultLengthLimits are used when the configuration does not say otherwise.
var DefaultLengthLimits = LengthLimits{
	MaxLengthField:    1024 * 512,
	MaxLengthPausable: 1024 * 1024,
	MaxLengthTotal:    1024 * 1024 * 4,
}
