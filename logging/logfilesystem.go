package logging

import (
	"os"
)

// LogFile is a file that log lines are appended to.
type LogFile interface {
	Append(content []byte) (err error)
	Close() error
}

// LogFileSystem creates log directories and opens log files.
type LogFileSystem interface {
	MkDir(dirname string) error
	Open(name string) (f LogFile, err error)
}

// NewLogFileSystem creates a LogFileSystem backed by the operating system.
func NewLogFileSystem() LogFileSystem {
	return &osLogFileSystem{}
}

type osLogFile struct {
	f *os.File
}

func (lf *osLogFile) Append(content []byte) (err error) {
	_, err = lf.f.Write(content)
	return
}

func (lf *osLogFile) Close() error {
	return lf.f.Close()
}

type osLogFileSystem struct{}

// MkDir creates the directory along with any necessary parents. Does nothing if it already exists.
func (fs *osLogFileSystem) MkDir(name string) error {
	return os.MkdirAll(name, 0755)
}

// Open opens the file for appending, creating it if it does not exist.
func (fs *osLogFileSystem) Open(name string) (lf LogFile, err error) {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}

	lf = &osLogFile{f: f}
	return
}
