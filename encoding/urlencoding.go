package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"webtools/tools"
)

const upperHex = "0123456789ABCDEF"

type urlCodecImpl struct{}

// NewURLCodec creates a tools.URLCodec using the application/x-www-form-urlencoded flavor of percent-encoding.
func NewURLCodec() tools.URLCodec {
	return &urlCodecImpl{}
}

func (c *urlCodecImpl) Encode(text string) string {
	return URLEncode(text)
}

func (c *urlCodecImpl) Decode(text string) (string, error) {
	return URLDecode(text)
}

// URLEncode percent-encodes the UTF-8 bytes of s the way HTML forms do. Letters, digits and ".-*_" are kept, space becomes '+', and every other byte becomes %XX with upper case hex.
func URLEncode(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreservedChar(c):
			buf.WriteByte(c)
		case c == ' ':
			buf.WriteByte('+')
		default:
			buf.WriteByte('%')
			buf.WriteByte(upperHex[c>>4])
			buf.WriteByte(upperHex[c&15])
		}
	}

	return buf.String()
}

// URLDecode reverses URLEncode. It returns a *tools.EncodingError if there is a malformed escape, or if the decoded bytes are not valid UTF-8.
func URLDecode(s string) (string, error) {
	if !strings.ContainsAny(s, "%+") {
		if !utf8.ValidString(s) {
			return "", &tools.EncodingError{Offset: invalidUTF8Offset(s), Reason: "decoded bytes are not valid UTF-8"}
		}
		return s, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '+':
			buf.WriteByte(' ')
		case '%':
			if i+2 >= len(s) {
				return "", &tools.EncodingError{Offset: i, Reason: "incomplete trailing escape (%) pattern"}
			}
			if !isHexChar(s[i+1]) || !isHexChar(s[i+2]) {
				return "", &tools.EncodingError{Offset: i, Reason: "illegal hex characters in escape (%) pattern"}
			}
			buf.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			buf.WriteByte(c)
		}
	}

	if !utf8.Valid(buf.Bytes()) {
		return "", &tools.EncodingError{Offset: invalidUTF8Offset(s), Reason: "decoded bytes are not valid UTF-8"}
	}

	return buf.String(), nil
}

// invalidUTF8Offset finds where in the encoded string s the first invalid UTF-8 sequence of the decoded bytes begins. It assumes s contains only valid escapes.
func invalidUTF8Offset(s string) int {
	var decoded []byte
	var srcOffsets []int
	for i := 0; i < len(s); i++ {
		srcOffsets = append(srcOffsets, i)
		switch s[i] {
		case '+':
			decoded = append(decoded, ' ')
		case '%':
			decoded = append(decoded, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			decoded = append(decoded, s[i])
		}
	}

	for i := 0; i < len(decoded); {
		r, size := utf8.DecodeRune(decoded[i:])
		if r == utf8.RuneError && size <= 1 {
			return srcOffsets[i]
		}
		i += size
	}

	return 0
}

// IsValidURLEncoding checks whether the given string contains all valid URL-encoded escapes.
func IsValidURLEncoding(content string) bool {
	type validateURLEncodingState int
	const (
		_ validateURLEncodingState = iota
		notInEscape
		char1InEscape // This means we've have so far seen something like %
		char2InEscape // This means we've have so far seen something like %2
	)
	state := notInEscape

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch state {
		case notInEscape:
			if c == '%' {
				state = char1InEscape
			}
		case char1InEscape:
			if isHexChar(c) {
				state = char2InEscape
			} else {
				return false
			}
		case char2InEscape:
			if isHexChar(c) {
				state = notInEscape
			} else {
				return false
			}
		}
	}

	return state == notInEscape
}

// WeakURLUnescape attempts to URL-unescape, but if there are any values that could not be URL-unescaped, they will be left as is.
// Used for form bodies, where a stray '%' should not fail the whole request.
func WeakURLUnescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	var buf bytes.Buffer
	buf.Grow(len(s)) // The unescaped version should be smaller than the escaped, so this pessimistic initial size should avoid making bytes.Buffer having to reallocate.

	// States for the state machine below
	type urlUnescapeState int
	const (
		_ urlUnescapeState = iota
		notInEscape
		char1InEscape
		char2InEscape
	)
	state := notInEscape

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case notInEscape:
			if c == '%' {
				state = char1InEscape
			} else if c == '+' {
				buf.WriteByte(' ')
			} else {
				buf.WriteByte(c)
			}
		case char1InEscape:
			if isHexChar(c) {
				state = char2InEscape
			} else {
				// Not valid URL encoding, so leave the bytes as is.
				buf.WriteByte(s[i-1])
				buf.WriteByte(s[i])
				state = notInEscape
			}
		case char2InEscape:
			if isHexChar(c) {
				buf.WriteByte(unhex(s[i-1])<<4 | unhex(s[i]))
				state = notInEscape
			} else {
				buf.WriteByte(s[i-2])
				buf.WriteByte(s[i-1])
				buf.WriteByte(s[i])
				state = notInEscape
			}
		}
	}

	// Did the string end with an unfinished escape sequence?
	if state == char1InEscape {
		buf.WriteByte(s[len(s)-1])
	} else if state == char2InEscape {
		buf.WriteByte(s[len(s)-2])
		buf.WriteByte(s[len(s)-1])
	}

	return buf.String()
}

func isUnreservedChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '*' || c == '_'
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Copied from Go's standard library net/url/url.go.
func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
