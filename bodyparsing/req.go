// Package bodyparsing parses HTTP request bodies into the request messages of the tools.
package bodyparsing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	"github.com/rs/zerolog"

	"webtools/encoding"
	"webtools/tools"
)

// NewRequestBodyParser creates a tools.RequestBodyParser.
func NewRequestBodyParser(lengthLimits tools.LengthLimits) tools.RequestBodyParser {
	return &reqBodyParserImpl{
		lengthLimits: lengthLimits,
	}
}

type reqBodyParserImpl struct {
	lengthLimits tools.LengthLimits
}

func (r *reqBodyParserImpl) LengthLimits() tools.LengthLimits {
	return r.lengthLimits
}

func (r *reqBodyParserImpl) Parse(logger zerolog.Logger, req tools.RequestBody, target tools.BodyTarget) (err error) {
	// If the headers already up front said that the request is going to be too large, there's no point in starting to read the body.
	if req.ContentLength() > int64(r.lengthLimits.MaxLengthTotal) {
		err = tools.ErrTotalBytesLimitExceeded
		return
	}

	body := newLimitedBodyReader(req.BodyReader(), r.lengthLimits)

	mediatype, mediaTypeParams, _ := mime.ParseMediaType(req.ContentType())
	logger.Debug().Str("mediatype", mediatype).Int64("contentLength", req.ContentLength()).Msg("Parsing request body")

	switch mediatype {
	case "application/json":
		err = r.parseJSONBody(body, target)

	case "application/x-www-form-urlencoded":
		err = r.parseURLEncodedBody(body, target)

	case "multipart/form-data":
		err = r.parseMultipartBody(logger, body, mediaTypeParams["boundary"], target)

	default:
		err = tools.ErrUnsupportedContentType
	}

	if err != nil {
		if limitErr := body.limitErr(); limitErr != nil {
			err = limitErr
			return
		}

		if tools.IsLengthLimitError(err) {
			return
		}

		err = &tools.BodyParseError{ContentType: mediatype, Err: err}
		return
	}

	return
}

func (r *reqBodyParserImpl) parseJSONBody(body *limitedBodyReader, target tools.BodyTarget) (err error) {
	// A JSON body is a single message, so only the total limit applies.
	body.PauseCounting = true

	dec := json.NewDecoder(body)
	err = dec.Decode(target)
	if err == io.EOF {
		err = errors.New("empty body")
	}

	return
}

func (r *reqBodyParserImpl) parseURLEncodedBody(body *limitedBodyReader, target tools.BodyTarget) (err error) {
	// The pair reader buffers ahead, so the field limit is checked on the pairs it splits out rather than on the reads.
	body.SkipFieldCount = true

	dec := encoding.NewFormPairReader(body)
	dec.MaxPairLength = r.lengthLimits.MaxLengthField
	for {
		var key, value string
		key, value, err = dec.Next()
		if err != nil {
			if err == io.EOF {
				err = nil
			} else if errors.Is(err, encoding.ErrPairTooLong) {
				err = tools.ErrFieldBytesLimitExceeded
			}

			return
		}

		if key == "" && value == "" {
			continue
		}

		err = target.SetFormField(encoding.WeakURLUnescape(key), encoding.WeakURLUnescape(value))
		if err != nil {
			return
		}
	}
}

func (r *reqBodyParserImpl) parseMultipartBody(logger zerolog.Logger, body *limitedBodyReader, boundary string, target tools.BodyTarget) (err error) {
	if boundary == "" {
		err = errors.New("missing multipart boundary")
		return
	}

	var buf bytes.Buffer
	m := multipart.NewReader(body, boundary)
	for i := 0; ; i++ {
		// The part headers are not strictly a field, but they may still be a significant number of bytes, so they are counted as one.
		body.StartField()

		var part *multipart.Part
		part, err = m.NextPart()
		if err != nil {
			if err == io.EOF {
				err = nil
			}

			return
		}

		c := part.Header.Get("Content-Disposition")
		var cdParams map[string]string
		_, cdParams, err = mime.ParseMediaType(c)
		if err != nil {
			err = fmt.Errorf("error while parsing Content-Disposition header of part number %v: %w", i, err)
			return
		}

		if _, ok := cdParams["filename"]; ok {
			// The tools take no file uploads. The part is drained by NextPart without counting towards the field limits.
			logger.Debug().Str("field", part.FormName()).Msg("Skipping file part of multipart body")
			body.PauseCounting = true
			continue
		}

		body.PauseCounting = false
		body.StartField()
		buf.Reset()
		_, err = buf.ReadFrom(part)
		if err != nil {
			err = fmt.Errorf("error while reading part number %v: %w", i, err)
			return
		}

		err = target.SetFormField(part.FormName(), buf.String())
		if err != nil {
			return
		}
	}
}
