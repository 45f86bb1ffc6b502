package logging

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"webtools/tools"
)

// DefaultResultsLogPath is where the results log is written unless configured otherwise.
const DefaultResultsLogPath = "/var/log/webtools/results_json.log"

// FileResultsLogger is a tools.ResultsLogger that appends one JSON object per line to a file. Appends from concurrent requests are serialized through a single writer goroutine.
type FileResultsLogger struct {
	file         LogFile
	logger       zerolog.Logger
	now          func() time.Time
	writelogline chan []byte
	writeDone    chan error
	done         chan struct{}

	mu       sync.RWMutex
	isClosed bool
}

// NewFileResultsLogger creates a results logger that writes log entries to the file at path, creating its directory if needed.
func NewFileResultsLogger(fileSystem LogFileSystem, logger zerolog.Logger, path string) (r *FileResultsLogger, err error) {
	dir := filepath.Dir(path)
	err = fileSystem.MkDir(dir)
	if err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create the directory while initializing")
		return
	}

	file, err := fileSystem.Open(path)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("Failed to open the file at initiation")
		return
	}

	r = &FileResultsLogger{
		file:         file,
		logger:       logger,
		now:          time.Now,
		writelogline: make(chan []byte),
		writeDone:    make(chan error),
		done:         make(chan struct{}),
	}

	go func() {
		for v := range r.writelogline {
			r.writeDone <- r.file.Append(append(v, '\n'))
		}
		close(r.done)
	}()

	return
}

// Close stops the writer goroutine and closes the file. Entries logged after Close are dropped.
func (l *FileResultsLogger) Close() (err error) {
	l.mu.Lock()
	if l.isClosed {
		l.mu.Unlock()
		return
	}
	l.isClosed = true
	close(l.writelogline)
	l.mu.Unlock()

	<-l.done
	err = l.file.Close()
	return
}

func (l *FileResultsLogger) ToolSucceeded(txid string, tool tools.Tool, details string) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeSucceeded, "Tool completed request", details))
}

func (l *FileResultsLogger) ToolFailed(txid string, tool tools.Tool, err error) {
	l.write(newResultsLogEntry(l.now(), txid, tool, failedOutcome(err), "Tool failed request", err.Error()))
}

func (l *FileResultsLogger) FieldBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, fieldBytesLimitMsg(limit), ""))
}

func (l *FileResultsLogger) PausableBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, pausableBytesLimitMsg(limit), ""))
}

func (l *FileResultsLogger) TotalBytesLimitExceeded(txid string, tool tools.Tool, limit int) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, totalBytesLimitMsg(limit), ""))
}

func (l *FileResultsLogger) BodyParseError(txid string, tool tools.Tool, err error) {
	l.write(newResultsLogEntry(l.now(), txid, tool, outcomeRejected, bodyParseErrorMsg, err.Error()))
}

func (l *FileResultsLogger) write(entry *resultsLogEntry) {
	bb, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.isClosed {
		return
	}

	l.writelogline <- bb
	if err = <-l.writeDone; err != nil {
		l.logger.Error().Err(err).Msg("Error while appending to results log file")
	}
}
