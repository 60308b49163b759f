package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/chatmark/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "parsed 3 files: 42 blocks, 120 inlines, 2 parse errors".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fileWord := wordFiles
	if stats.FilesParsed == 1 {
		fileWord = wordFile
	}

	head := fmt.Sprintf("parsed %d %s", stats.FilesParsed, fileWord)

	parts := []string{
		fmt.Sprintf("%d blocks", stats.Blocks),
		fmt.Sprintf("%d inlines", stats.Inlines),
	}

	if stats.ErrorNodes > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d parse errors", stats.ErrorNodes)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return head + ": " + strings.Join(parts, ", ") + "\n"
}
