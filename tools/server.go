package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Server is the top level interface to the tools.
type Server interface {
	URLEncode(ctx context.Context, value string) (encoded string, err error)
	URLDecode(ctx context.Context, value string) (decoded string, err error)
	RegexpCheck(ctx context.Context, req ScanRequest) (result ScanResult, err error)
	DateTimeDiff(ctx context.Context, dateTime1 string, dateTime2 string) (seconds int64, err error)
	DateTimeCalc(ctx context.Context, baseDateTime string, addTime string, subtract bool) (result string, err error)
}

type txidKey struct{}

// WithTransactionID returns a copy of ctx carrying the given transaction ID.
func WithTransactionID(ctx context.Context, txid string) context.Context {
	return context.WithValue(ctx, txidKey{}, txid)
}

// TransactionID returns the transaction ID stored in ctx, or "" if there is none.
func TransactionID(ctx context.Context) string {
	txid, _ := ctx.Value(txidKey{}).(string)
	return txid
}

type serverImpl struct {
	logger         zerolog.Logger
	scanner        Scanner
	urlCodec       URLCodec
	dateCalculator DateCalculator
	resultsLogger  ResultsLogger
}

// NewServer creates a new top level tools server.
func NewServer(logger zerolog.Logger, scanner Scanner, urlCodec URLCodec, dateCalculator DateCalculator, rl ResultsLogger) Server {
	return &serverImpl{
		logger:         logger,
		scanner:        scanner,
		urlCodec:       urlCodec,
		dateCalculator: dateCalculator,
		resultsLogger:  rl,
	}
}

func (s *serverImpl) URLEncode(ctx context.Context, value string) (encoded string, err error) {
	defer s.track(ctx, ToolURLEncode, &err, func() string { return fmt.Sprintf("encoded %d bytes", len(value)) })()

	encoded = s.urlCodec.Encode(value)
	return
}

func (s *serverImpl) URLDecode(ctx context.Context, value string) (decoded string, err error) {
	defer s.track(ctx, ToolURLDecode, &err, func() string { return fmt.Sprintf("decoded %d bytes", len(value)) })()

	decoded, err = s.urlCodec.Decode(value)
	return
}

func (s *serverImpl) RegexpCheck(ctx context.Context, req ScanRequest) (result ScanResult, err error) {
	defer s.track(ctx, ToolRegexpCheck, &err, func() string {
		return fmt.Sprintf("pattern %q found %d matches (global=%v)", req.Pattern, len(result), req.Global)
	})()

	result, err = s.scanner.Scan(ctx, req)
	return
}

func (s *serverImpl) DateTimeDiff(ctx context.Context, dateTime1 string, dateTime2 string) (seconds int64, err error) {
	defer s.track(ctx, ToolDateTimeDiff, &err, func() string { return fmt.Sprintf("%d seconds", seconds) })()

	seconds, err = s.dateCalculator.DiffSeconds(dateTime1, dateTime2)
	return
}

func (s *serverImpl) DateTimeCalc(ctx context.Context, baseDateTime string, addTime string, subtract bool) (result string, err error) {
	defer s.track(ctx, ToolDateTimeCalc, &err, func() string { return result })()

	result, err = s.dateCalculator.Offset(baseDateTime, addTime, subtract)
	return
}

// track logs the start of a tool invocation and returns a func to be deferred, which logs and reports the outcome.
func (s *serverImpl) track(ctx context.Context, tool Tool, err *error, details func() string) func() {
	txid := TransactionID(ctx)
	logger := s.logger.With().Str("txid", txid).Str("tool", string(tool)).Logger()
	logger.Debug().Msg("Tool got request")
	startTime := time.Now()

	return func() {
		if *err != nil {
			if IsClientError(*err) {
				logger.Info().Err(*err).Dur("timeTaken", time.Since(startTime)).Msg("Tool rejected request")
			} else {
				logger.Error().Err(*err).Dur("timeTaken", time.Since(startTime)).Msg("Tool failed")
			}
			s.resultsLogger.ToolFailed(txid, tool, *err)
			return
		}

		logger.Info().Dur("timeTaken", time.Since(startTime)).Msg("Tool completed request")
		s.resultsLogger.ToolSucceeded(txid, tool, details())
	}
}
