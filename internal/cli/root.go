// Package cli provides the Cobra command structure for chatmark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/chatmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root chatmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "chatmark",
		Short: "Parse chat Markdown into position-annotated syntax trees",
		Long: `chatmark parses chat-message Markdown into a lossless, position-annotated
syntax tree.

Every node carries its [start,end) byte range in the source text, malformed
constructs degrade to in-tree error nodes instead of failing the whole
parse, and identical input always produces an identical tree. The parse
subcommand renders trees for inspection as styled terminal output, JSON, or
a plain text outline.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flag parse failures are usage mistakes, not internal errors.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	applyHelpStyling(rootCmd, color, os.Stdout)

	return rootCmd
}
