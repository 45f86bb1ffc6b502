package scanner

import (
	"webtools/tools"
)

type mockRegexEngineFactory struct {
	newRegexEngineCalls int
	engine              *mockRegexEngine
	err                 error
}

func (f *mockRegexEngineFactory) NewRegexEngine(pattern string, flags tools.ScanFlags) (e tools.RegexEngine, err error) {
	f.newRegexEngineCalls++
	if f.err != nil {
		err = f.err
		return
	}

	e = f.engine
	return
}

type mockRegexEngine struct {
	numGroups int
	findAt    func(text string, at int) ([]int, error)
	findAtLog []int
}

func (e *mockRegexEngine) NumGroups() int {
	return e.numGroups
}

func (e *mockRegexEngine) NewMatcher(text string) tools.RegexMatcher {
	return &mockRegexMatcher{engine: e, text: text}
}

type mockRegexMatcher struct {
	engine *mockRegexEngine
	text   string
}

func (m *mockRegexMatcher) FindAt(at int) ([]int, error) {
	m.engine.findAtLog = append(m.engine.findAtLog, at)
	return m.engine.findAt(m.text, at)
}
