package httpapi

import (
	"fmt"
	"strings"

	"webtools/tools"
)

// Values of the status field of every response.
const (
	statusSuccess = "success"
	statusError   = "error"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type urlEncodeRequest struct {
	URLEncodeValue *string `json:"urlEncodeValue"`
}

type urlEncodeResponse struct {
	Status          string `json:"status"`
	URLEncodedValue string `json:"urlEncodedValue"`
}

type urlDecodeRequest struct {
	URLDecodeValue *string `json:"urlDecodeValue"`
}

type urlDecodeResponse struct {
	Status          string `json:"status"`
	URLDecodedValue string `json:"urlDecodedValue"`
}

type regexpCheckRequest struct {
	TargetText *string `json:"targetText"`
	Pattern    *string `json:"pattern"`
	IgnoreCase bool    `json:"ignoreCase"`
	Global     bool    `json:"global"`
	MultiLine  bool    `json:"multiLine"`
}

type matchMessage struct {
	Start  int       `json:"start"`
	Match  string    `json:"match"`
	Groups []*string `json:"groups"`
}

type regexpCheckResponse struct {
	Status     string         `json:"status"`
	ResultText string         `json:"resultText"`
	Matches    []matchMessage `json:"matches"`
}

type dateTimeDiffRequest struct {
	DateTime1 *string `json:"datetime1"`
	DateTime2 *string `json:"datetime2"`
}

type dateTimeDiffResponse struct {
	Status        string `json:"status"`
	ResultSeconds int64  `json:"resultSeconds"`
}

type dateTimeCalcRequest struct {
	BaseDateTime  *string `json:"baseDateTime"`
	AddTime       *string `json:"addTime"`
	IsSubtraction bool    `json:"isSubtraction"`
}

type dateTimeCalcResponse struct {
	Status         string `json:"status"`
	ResultDateTime string `json:"resultDateTime"`
}

// missingFieldError is returned when a required request field was not given.
type missingFieldError struct {
	field string
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.field)
}

func requireField(field string, v *string) (string, error) {
	if v == nil {
		return "", &missingFieldError{field: field}
	}
	return *v, nil
}

// parseFormBool accepts the usual spellings of HTML form checkbox values.
func parseFormBool(key string, value string) (b bool, err error) {
	switch strings.ToLower(value) {
	case "true", "1", "on", "yes":
		b = true
	case "false", "0", "off", "no", "":
		b = false
	default:
		err = fmt.Errorf("invalid boolean %q for field %q", value, key)
	}
	return
}

func (m *urlEncodeRequest) SetFormField(key string, value string) error {
	if key == "urlEncodeValue" {
		m.URLEncodeValue = &value
	}
	return nil
}

func (m *urlDecodeRequest) SetFormField(key string, value string) error {
	if key == "urlDecodeValue" {
		m.URLDecodeValue = &value
	}
	return nil
}

func (m *regexpCheckRequest) SetFormField(key string, value string) (err error) {
	switch key {
	case "targetText":
		m.TargetText = &value
	case "pattern":
		m.Pattern = &value
	case "ignoreCase":
		m.IgnoreCase, err = parseFormBool(key, value)
	case "global":
		m.Global, err = parseFormBool(key, value)
	case "multiLine":
		m.MultiLine, err = parseFormBool(key, value)
	}
	return
}

func (m *dateTimeDiffRequest) SetFormField(key string, value string) error {
	switch key {
	case "datetime1":
		m.DateTime1 = &value
	case "datetime2":
		m.DateTime2 = &value
	}
	return nil
}

func (m *dateTimeCalcRequest) SetFormField(key string, value string) (err error) {
	switch key {
	case "baseDateTime":
		m.BaseDateTime = &value
	case "addTime":
		m.AddTime = &value
	case "isSubtraction":
		m.IsSubtraction, err = parseFormBool(key, value)
	}
	return
}

func toMatchMessages(result tools.ScanResult) []matchMessage {
	matches := make([]matchMessage, 0, len(result))
	for _, m := range result {
		matches = append(matches, matchMessage{Start: m.Start, Match: m.MatchedText, Groups: m.Groups})
	}
	return matches
}
