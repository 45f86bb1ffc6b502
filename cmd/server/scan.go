package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"webtools/regexengine"
	"webtools/scanner"
	"webtools/tools"
)

type scanOptions struct {
	pattern         string
	text            string
	textSet         bool
	caseInsensitive bool
	multiline       bool
	global          bool
	engine          string
	matchTimeout    time.Duration
}

type scanMatchOutput struct {
	Start  int       `json:"start"`
	Match  string    `json:"match"`
	Groups []*string `json:"groups"`
}

func newScanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find the matches of a pattern in a text, read from stdin unless --text is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.textSet = cmd.Flags().Changed("text")
			return runScan(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "the regular expression")
	cmd.Flags().StringVar(&opts.text, "text", "", "the text to scan")
	cmd.Flags().BoolVarP(&opts.caseInsensitive, "ignore-case", "i", false, "match letters regardless of case")
	cmd.Flags().BoolVarP(&opts.multiline, "multiline", "m", false, "let ^ and $ match at line boundaries")
	cmd.Flags().BoolVarP(&opts.global, "global", "g", false, "report every match instead of only the first")
	cmd.Flags().StringVar(&opts.engine, "engine", regexengine.EngineBacktrack, fmt.Sprintf("regex engine, one of %v", regexengine.EngineNames))
	cmd.Flags().DurationVar(&opts.matchTimeout, "timeout", 2*time.Second, "time budget of each match attempt of the backtrack engine")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions) (err error) {
	text := opts.text
	if !opts.textSet {
		var bb []byte
		bb, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return
		}
		text = string(bb)
	}

	ef, err := regexengine.NewEngineFactory(opts.engine, opts.matchTimeout)
	if err != nil {
		return
	}

	flags := tools.ScanFlags{CaseInsensitive: opts.caseInsensitive, Multiline: opts.multiline}
	p, err := scanner.Compile(ef, opts.pattern, flags)
	if err != nil {
		return
	}

	result, err := scanner.Scan(cmd.Context(), p, text, opts.global)
	if err != nil {
		return
	}

	out := make([]scanMatchOutput, 0, len(result))
	for _, m := range result {
		out = append(out, scanMatchOutput{Start: m.Start, Match: m.MatchedText, Groups: m.Groups})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	err = enc.Encode(out)
	return
}
