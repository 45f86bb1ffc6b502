package httpapi

import (
	"context"
	"errors"
	"sync"

	"webtools/tools"
)

type mockResultsLoggerCall struct {
	method string
	txid   string
	tool   tools.Tool
}

type mockResultsLogger struct {
	mu    sync.Mutex
	calls []mockResultsLoggerCall
}

func (l *mockResultsLogger) add(method string, txid string, tool tools.Tool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, mockResultsLoggerCall{method, txid, tool})
}

func (l *mockResultsLogger) ToolSucceeded(txid string, tool tools.Tool, details string) {
	l.add("ToolSucceeded", txid, tool)
}
func (l *mockResultsLogger) ToolFailed(txid string, tool tools.Tool, err error) {
	l.add("ToolFailed", txid, tool)
}
func (l *mockResultsLogger) FieldBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.add("FieldBytesLimitExceeded", txid, tool)
}
func (l *mockResultsLogger) PausableBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.add("PausableBytesLimitExceeded", txid, tool)
}
func (l *mockResultsLogger) TotalBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.add("TotalBytesLimitExceeded", txid, tool)
}
func (l *mockResultsLogger) BodyParseError(txid string, tool tools.Tool, err error) {
	l.add("BodyParseError", txid, tool)
}

var errMockInternal = errors.New("disk on fire")

// mockServer fails every tool with an error that is not caused by the request.
type mockServer struct {
	panicOnEncode bool
}

func (s *mockServer) URLEncode(ctx context.Context, value string) (string, error) {
	if s.panicOnEncode {
		panic("boom")
	}
	return "", errMockInternal
}
func (s *mockServer) URLDecode(ctx context.Context, value string) (string, error) {
	return "", errMockInternal
}
func (s *mockServer) RegexpCheck(ctx context.Context, req tools.ScanRequest) (tools.ScanResult, error) {
	return nil, errMockInternal
}
func (s *mockServer) DateTimeDiff(ctx context.Context, dt1 string, dt2 string) (int64, error) {
	return 0, errMockInternal
}
func (s *mockServer) DateTimeCalc(ctx context.Context, base string, addTime string, subtract bool) (string, error) {
	return "", context.DeadlineExceeded
}
