package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/chatmark/internal/ui/pretty"
	"github.com/yaklabco/chatmark/pkg/runner"
)

func TestFormatSummaryOneLine_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed: 3,
		Blocks:      42,
		Inlines:     120,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Equal(t, "parsed 3 files: 42 blocks, 120 inlines\n", result)
}

func TestFormatSummaryOneLine_SingularFile(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed: 1,
		Blocks:      2,
		Inlines:     5,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "parsed 1 file:")
}

func TestFormatSummaryOneLine_WithErrorNodes(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed: 2,
		Blocks:      8,
		Inlines:     20,
		ErrorNodes:  2,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "2 parse errors")
}

func TestFormatSummaryOneLine_WithUnreadableFiles(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed:  1,
		FilesErrored: 2,
		Blocks:       3,
		Inlines:      7,
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "2 unreadable")
}
