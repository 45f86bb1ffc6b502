// Package regexengine holds the regex engines that patterns can be compiled with.
package regexengine

import (
	"fmt"
	"time"

	"webtools/tools"
)

// Names of the available engines, as used in the configuration.
const (
	EngineBacktrack = "backtrack"
)

// EngineNames lists the names NewEngineFactory accepts.
var EngineNames = []string{EngineBacktrack}

// NewEngineFactory chooses the engine factory by name. An empty name gives the backtrack engine.
func NewEngineFactory(name string, matchTimeout time.Duration) (f tools.RegexEngineFactory, err error) {
	switch name {
	case EngineBacktrack, "":
		f = NewBacktrackEngineFactory(matchTimeout)
	default:
		err = fmt.Errorf("unknown regex engine %q, expected one of %v", name, EngineNames)
	}

	return
}
