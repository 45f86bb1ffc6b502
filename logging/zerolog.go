package logging

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"webtools/tools"
)

// NewZerologResultsLogger creates a results logger that writes the results log entries to a zerolog.Logger.
func NewZerologResultsLogger(logger zerolog.Logger) tools.ResultsLogger {
	return &zerologResultsLogger{logger: logger, now: time.Now}
}

type zerologResultsLogger struct {
	logger zerolog.Logger
	now    func() time.Time
}

func (l *zerologResultsLogger) ToolSucceeded(txid string, tool tools.Tool, details string) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeSucceeded, "Tool completed request", details))
}

func (l *zerologResultsLogger) ToolFailed(txid string, tool tools.Tool, err error) {
	l.write(newResultsLogEntry(l.now(), txid, tool, failedOutcome(err), "Tool failed request", err.Error()))
}

func (l *zerologResultsLogger) FieldBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, fieldBytesLimitMsg(limit), ""))
}

func (l *zerologResultsLogger) PausableBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, pausableBytesLimitMsg(limit), ""))
}

func (l *zerologResultsLogger) TotalBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, totalBytesLimitMsg(limit), ""))
}

func (l *zerologResultsLogger) BodyParseError(txid string, tool tools.Tool, err error) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, bodyParseErrorMsg, err.Error()))
}

func (l *zerologResultsLogger) write(entry *resultsLogEntry) {
	bb, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
		return
	}

	l.logger.Info().RawJSON("result", bb).Msg("Results log")
}
