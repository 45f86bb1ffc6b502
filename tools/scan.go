package tools

import (
	"context"
)

// ScanFlags are the pattern modifiers that are applied at compile time.
type ScanFlags struct {
	CaseInsensitive bool
	Multiline       bool // ^ and $ also match at line boundaries inside the text.
}

// ScanRequest asks for the matches of Pattern in Text.
type ScanRequest struct {
	Text            string
	Pattern         string
	CaseInsensitive bool
	Multiline       bool
	Global          bool // Report every non-overlapping match instead of only the first one.
}

// Flags returns the compile time modifiers of the request.
func (r ScanRequest) Flags() ScanFlags {
	return ScanFlags{CaseInsensitive: r.CaseInsensitive, Multiline: r.Multiline}
}

// MatchResult is a single match found by a Scanner.
type MatchResult struct {
	// Start is the offset of the match in characters (Unicode code points), not bytes.
	Start       int
	MatchedText string

	// Groups has one element per capturing group of the pattern. A nil element means the group did not participate in the match, which is not the same as a group that matched the empty string.
	Groups []*string
}

// ScanResult is the ordered, non-overlapping list of matches of one scan.
type ScanResult []MatchResult

// Scanner compiles a pattern and scans a text with it.
type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)
}

// RegexEngineFactory is an interface to a factory that compiles a single pattern into a RegexEngine, such as regexp2.
type RegexEngineFactory interface {
	NewRegexEngine(pattern string, flags ScanFlags) (e RegexEngine, err error)
}

// RegexEngine is a compiled pattern. It is immutable and knows its number of capturing groups.
type RegexEngine interface {
	NumGroups() int
	NewMatcher(text string) RegexMatcher
}

// RegexMatcher searches a single text. It holds per-text scratch state, and may therefore not be used concurrently.
type RegexMatcher interface {
	// FindAt finds the leftmost match that starts at or after the byte offset at. The whole text is still visible to anchors and word boundaries.
	// The returned slice holds byte offset pairs, group 0 first, with -1 for groups that did not participate. It is nil if there was no match.
	FindAt(at int) (loc []int, err error)
}
