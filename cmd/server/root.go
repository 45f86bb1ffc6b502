package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webtools",
		Short: "Stateless text and time tools over HTTP",
		Long: `webtools serves small text and time utilities over HTTP: URL encoding
and decoding, regular expression checks, and date-time arithmetic.

The scan subcommand runs a regular expression check locally, without a server.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newScanCommand())

	return cmd
}
