package logging

import (
	"errors"
	"sync"
	"time"
)

type mockFile struct {
	mu      sync.Mutex
	Content string
	closed  bool
}

func (f *mockFile) Append(content []byte) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Content = f.Content + string(content)
	return nil
}

func (f *mockFile) Close() error {
	f.closed = true
	return nil
}

type mockFileSystem struct {
	dirs    []string
	fmap    map[string]*mockFile
	openErr error
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{fmap: make(map[string]*mockFile)}
}

func (fs *mockFileSystem) MkDir(name string) error {
	fs.dirs = append(fs.dirs, name)
	return nil
}

func (fs *mockFileSystem) Open(name string) (f LogFile, err error) {
	if fs.openErr != nil {
		return nil, fs.openErr
	}

	mf := &mockFile{}
	fs.fmap[name] = mf
	return mf, nil
}

func (fs *mockFileSystem) Get(name string) (content string) {
	f := fs.fmap[name]
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Content
}

var errMockOpen = errors.New("permission denied")

func fixedNow() time.Time {
	return time.Date(2023, 12, 25, 12, 30, 0, 0, time.UTC)
}
