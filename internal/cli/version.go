package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/chatmark/internal/logging"
)

// versionInfo is the JSON shape of version output.
type versionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of chatmark.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionInfo{
				Version:  info.Version,
				Commit:   info.Commit,
				Date:     info.Date,
				Go:       runtime.Version(),
				Platform: runtime.GOOS + "/" + runtime.GOARCH,
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(v); err != nil {
					return fmt.Errorf("encode version: %w", err)
				}
				return nil
			}

			logger := log.NewWithOptions(os.Stdout, log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			logger.Info("chatmark",
				logging.FieldVersion, v.Version,
				logging.FieldCommit, v.Commit,
				logging.FieldBuilt, v.Date,
				logging.FieldGoVersion, v.Go,
				logging.FieldPlatform, v.Platform,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print version information as JSON")

	return cmd
}
