package regexengine

import (
	"sort"
	"time"

	"github.com/dlclark/regexp2"

	"webtools/tools"
)

// BacktrackEngineFactory implements the tools.RegexEngineFactory interface using regexp2, a backtracking engine which supports lookaround and backreferences.
// Backtracking can take exponential time, so every match attempt is bounded by MatchTimeout.
type BacktrackEngineFactory struct {
	MatchTimeout time.Duration
}

type backtrackEngine struct {
	re           *regexp2.Regexp
	numGroups    int
	matchTimeout time.Duration
}

type backtrackMatcher struct {
	engine *backtrackEngine
	runes  []rune

	// byteOffsets[i] is the byte offset of runes[i] in the text. The extra last element is the length of the text.
	byteOffsets []int
}

// NewBacktrackEngineFactory creates a tools.RegexEngineFactory backed by regexp2. A matchTimeout of zero disables the timeout.
func NewBacktrackEngineFactory(matchTimeout time.Duration) tools.RegexEngineFactory {
	return &BacktrackEngineFactory{MatchTimeout: matchTimeout}
}

// NewRegexEngine compiles the pattern into a tools.RegexEngine.
func (f *BacktrackEngineFactory) NewRegexEngine(pattern string, flags tools.ScanFlags) (e tools.RegexEngine, err error) {
	opts := regexp2.None
	if flags.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opts |= regexp2.Multiline
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		err = &tools.PatternError{Pattern: pattern, Err: err}
		return
	}

	if f.MatchTimeout > 0 {
		re.MatchTimeout = f.MatchTimeout
	}

	e = &backtrackEngine{
		re:           re,
		numGroups:    len(re.GetGroupNumbers()) - 1, // Group 0 is the entire match.
		matchTimeout: f.MatchTimeout,
	}
	return
}

func (b *backtrackEngine) NumGroups() int {
	return b.numGroups
}

func (b *backtrackEngine) NewMatcher(text string) tools.RegexMatcher {
	m := &backtrackMatcher{
		engine:      b,
		runes:       make([]rune, 0, len(text)),
		byteOffsets: make([]int, 0, len(text)+1),
	}

	// Ranging over the string gives invalid UTF-8 bytes one rune each, the same way []rune(text) does.
	for i, r := range text {
		m.runes = append(m.runes, r)
		m.byteOffsets = append(m.byteOffsets, i)
	}
	m.byteOffsets = append(m.byteOffsets, len(text))

	return m
}

func (m *backtrackMatcher) FindAt(at int) (loc []int, err error) {
	// regexp2 works with rune indexes.
	runeAt := sort.SearchInts(m.byteOffsets, at)

	match, err := m.engine.re.FindRunesMatchStartingAt(m.runes, runeAt)
	if err != nil {
		// The only error regexp2 reports while matching is a timeout.
		err = &tools.ScanTimeoutError{Timeout: m.engine.matchTimeout, Err: err}
		return
	}
	if match == nil {
		return
	}

	loc = make([]int, 2*(m.engine.numGroups+1))
	for i := range loc {
		loc[i] = -1
	}

	for i, g := range match.Groups() {
		if i > m.engine.numGroups {
			break
		}
		if len(g.Captures) == 0 {
			continue
		}

		// The last capture is embedded in the group, which is also what is reported for repeated groups.
		loc[2*i] = m.byteOffsets[g.Index]
		loc[2*i+1] = m.byteOffsets[g.Index+g.Length]
	}

	return
}
