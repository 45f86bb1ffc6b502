package tools

import (
	"context"
)

type mockScanner struct {
	scanCalls int
	result    ScanResult
	err       error
	gotCtx    context.Context
}

func (m *mockScanner) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	m.scanCalls++
	m.gotCtx = ctx
	return m.result, m.err
}

type mockURLCodec struct{}

func (m *mockURLCodec) Encode(text string) string {
	return "enc(" + text + ")"
}

func (m *mockURLCodec) Decode(text string) (string, error) {
	if text == "%" {
		return "", &EncodingError{Offset: 0, Reason: "incomplete trailing escape (%) pattern"}
	}
	return "dec(" + text + ")", nil
}

type mockDateCalculator struct {
	err error
}

func (m *mockDateCalculator) DiffSeconds(dateTime1 string, dateTime2 string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return 42, nil
}

func (m *mockDateCalculator) Offset(baseDateTime string, addTime string, subtract bool) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if subtract {
		return baseDateTime + "-" + addTime, nil
	}
	return baseDateTime + "+" + addTime, nil
}

type mockResultsLogEntry struct {
	txid    string
	tool    Tool
	details string
	err     error
}

type mockResultsLogger struct {
	succeeded []mockResultsLogEntry
	failed    []mockResultsLogEntry
}

func (m *mockResultsLogger) ToolSucceeded(txid string, tool Tool, details string) {
	m.succeeded = append(m.succeeded, mockResultsLogEntry{txid: txid, tool: tool, details: details})
}

func (m *mockResultsLogger) ToolFailed(txid string, tool Tool, err error) {
	m.failed = append(m.failed, mockResultsLogEntry{txid: txid, tool: tool, err: err})
}

func (m *mockResultsLogger) FieldBytesLimitExceeded(txid string, tool Tool, limit int)    {}
func (m *mockResultsLogger) PausableBytesLimitExceeded(txid string, tool Tool, limit int) {}
func (m *mockResultsLogger) TotalBytesLimitExceeded(txid string, tool Tool, limit int)    {}
func (m *mockResultsLogger) BodyParseError(txid string, tool Tool, err error)             {}

