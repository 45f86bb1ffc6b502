package e2e

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"
)

type resultsLogLine struct {
	Time          string `json:"time"`
	OperationName string `json:"operationName"`
	Category      string `json:"category"`
	Properties    struct {
		TransactionID string `json:"transactionId"`
		Tool          string `json:"tool"`
		Outcome       string `json:"outcome"`
		Message       string `json:"message"`
		Details       string `json:"details"`
	} `json:"properties"`
}

// readLogs waits until the results log holds at least n lines, and returns them.
func readLogs(t *testing.T, ts *testServer, n int) (lines []resultsLogLine) {
	deadline := time.Now().Add(5 * time.Second)
	for {
		lines = parseLogs(t, ts.resultsLogPath)
		if len(lines) >= n || time.Now().After(deadline) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func parseLogs(t *testing.T, path string) (lines []resultsLogLine) {
	file, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Got unexpected error: %v", err)
	}

	s := bufio.NewScanner(bytes.NewReader(file))
	for s.Scan() {
		var line resultsLogLine
		if err := json.Unmarshal(s.Bytes(), &line); err != nil {
			t.Fatalf("Results log line was not JSON: %v: %q", err, s.Text())
		}
		lines = append(lines, line)
	}
	return
}

func findLog(lines []resultsLogLine, txid string) *resultsLogLine {
	for i := range lines {
		if lines[i].Properties.TransactionID == txid {
			return &lines[i]
		}
	}
	return nil
}
