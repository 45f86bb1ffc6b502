package bodyparsing

import (
	"errors"
	"io"
	"strings"
)

type mockRequestBody struct {
	contentType   string
	contentLength int64
	body          io.Reader
}

func (r *mockRequestBody) ContentType() string   { return r.contentType }
func (r *mockRequestBody) ContentLength() int64  { return r.contentLength }
func (r *mockRequestBody) BodyReader() io.Reader { return r.body }

func newMockRequestBody(contentType string, body string) *mockRequestBody {
	return &mockRequestBody{contentType: contentType, contentLength: int64(len(body)), body: strings.NewReader(body)}
}

type mockFormField struct {
	key   string
	value string
}

type mockMessage struct {
	Pattern string `json:"pattern"`
	Global  bool   `json:"global"`

	formFields []mockFormField
}

var errMockBadField = errors.New("bad field")

func (m *mockMessage) SetFormField(key string, value string) error {
	if key == "bad" {
		return errMockBadField
	}

	m.formFields = append(m.formFields, mockFormField{key, value})
	switch key {
	case "pattern":
		m.Pattern = value
	case "global":
		m.Global = value == "true"
	}
	return nil
}
