package logging

import (
	"fmt"
	"time"

	"webtools/tools"
)

const (
	operationName = "WebTools"
	category      = "WebToolsResultsLog"
)

// Outcomes of a tool invocation.
const (
	outcomeSucceeded = "Succeeded"
	outcomeFailed    = "Failed"
	outcomeRejected  = "Rejected"
)

type resultsLogEntry struct {
	Time          string                  `json:"time"`
	OperationName string                  `json:"operationName"`
	Category      string                  `json:"category"`
	Properties    resultsLogEntryProperty `json:"properties"`
}

type resultsLogEntryProperty struct {
	TransactionID string `json:"transactionId"`
	Tool          string `json:"tool"`
	Outcome       string `json:"outcome"`
	Message       string `json:"message"`
	Details       string `json:"details,omitempty"`
}

func newResultsLogEntry(now time.Time, txid string, tool tools.Tool, outcome string, msg string, details string) *resultsLogEntry {
	return &resultsLogEntry{
		Time:          now.UTC().Format(time.RFC3339Nano),
		OperationName: operationName,
		Category:      category,
		Properties: resultsLogEntryProperty{
			TransactionID: txid,
			Tool:          string(tool),
			Outcome:       outcome,
			Message:       msg,
			Details:       details,
		},
	}
}

// failedOutcome tells apart invocations rejected because of their input from ones that failed inside the service.
func failedOutcome(err error) string {
	if tools.IsClientError(err) {
		return outcomeRejected
	}
	return outcomeFailed
}

func fieldBytesLimitMsg(limit int) string {
	return fmt.Sprintf("Request body contained a field longer than the limit (%d bytes)", limit)
}

func pausableBytesLimitMsg(limit int) string {
	return fmt.Sprintf("Request body length (excluding file upload fields) exceeded the limit (%d bytes)", limit)
}

func totalBytesLimitMsg(limit int) string {
	return fmt.Sprintf("Request body length exceeded the limit (%d bytes)", limit)
}

const bodyParseErrorMsg = "Request body parsing error"
