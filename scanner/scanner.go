// Package scanner finds the matches of a pattern in a text, one match at a time, by moving a cursor through the text.
package scanner

import (
	"context"
	"unicode/utf8"

	"webtools/tools"
)

// CompiledPattern is a pattern compiled together with its flags. It is built for a single scan and is never shared between requests.
type CompiledPattern struct {
	pattern string
	flags   tools.ScanFlags
	engine  tools.RegexEngine
}

// NumGroups returns the number of capturing groups in the pattern. Every MatchResult produced with this pattern has exactly this many groups.
func (p *CompiledPattern) NumGroups() int {
	return p.engine.NumGroups()
}

// String returns the source pattern.
func (p *CompiledPattern) String() string {
	return p.pattern
}

type scannerImpl struct {
	engineFactory tools.RegexEngineFactory
}

// NewScanner creates a tools.Scanner that compiles patterns with the given engine factory.
func NewScanner(ef tools.RegexEngineFactory) tools.Scanner {
	return &scannerImpl{engineFactory: ef}
}

// Compile compiles pattern with the given flags. A pattern that is not valid syntax gives a *tools.PatternError.
func Compile(ef tools.RegexEngineFactory, pattern string, flags tools.ScanFlags) (p *CompiledPattern, err error) {
	e, err := ef.NewRegexEngine(pattern, flags)
	if err != nil {
		return
	}

	p = &CompiledPattern{pattern: pattern, flags: flags, engine: e}
	return
}

func (s *scannerImpl) Scan(ctx context.Context, req tools.ScanRequest) (result tools.ScanResult, err error) {
	p, err := Compile(s.engineFactory, req.Pattern, req.Flags())
	if err != nil {
		return
	}

	result, err = Scan(ctx, p, req.Text, req.Global)
	return
}

// Scan finds the matches of p in text. Unless global is set, it stops after the first match.
// The result is never nil when err is nil, so "no matches" is an empty result rather than an error.
func Scan(ctx context.Context, p *CompiledPattern, text string, global bool) (result tools.ScanResult, err error) {
	result = tools.ScanResult{}
	m := p.engine.NewMatcher(text)
	numGroups := p.engine.NumGroups()

	// Offsets below are byte offsets. Match starts are converted to character offsets incrementally, which works because they never decrease.
	cursor := 0
	charOffset := 0
	charOffsetAt := 0

	for cursor <= len(text) {
		if err = ctx.Err(); err != nil {
			result = nil
			return
		}

		var loc []int
		loc, err = m.FindAt(cursor)
		if err != nil {
			result = nil
			return
		}
		if loc == nil {
			break
		}

		start, end := loc[0], loc[1]
		charOffset += utf8.RuneCountInString(text[charOffsetAt:start])
		charOffsetAt = start

		result = append(result, tools.MatchResult{
			Start:       charOffset,
			MatchedText: text[start:end],
			Groups:      extractGroups(text, loc, numGroups),
		})

		if !global {
			break
		}

		if end > start {
			cursor = end
			continue
		}

		// Empty match. Step over one character, or the same empty match would be found again forever.
		if end >= len(text) {
			break
		}
		_, width := utf8.DecodeRuneInString(text[end:])
		cursor = end + width
	}

	return
}

func extractGroups(text string, loc []int, numGroups int) []*string {
	groups := make([]*string, numGroups)
	for i := 1; i <= numGroups; i++ {
		if 2*i+1 >= len(loc) || loc[2*i] < 0 {
			// Did not participate in the match.
			continue
		}

		g := text[loc[2*i]:loc[2*i+1]]
		groups[i-1] = &g
	}

	return groups
}
