package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/chatmark/internal/ui/pretty"
)

// helpStyles holds the lipgloss styles used by the help templates.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	sub     lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{
			heading: plain,
			command: plain,
			sub:     plain,
			flag:    plain,
			dim:     plain,
		}
	}

	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		sub:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . }}

{{end}}` + usageTemplate

// applyHelpStyling installs styled usage and help templates on cmd and its
// subcommands.
func applyHelpStyling(cmd *cobra.Command, colorMode string, writer io.Writer) {
	styles := newHelpStyles(pretty.IsColorEnabled(colorMode, writer))

	funcs := template.FuncMap{
		"heading":    styles.heading.Render,
		"command":    styles.command.Render,
		"subcommand": styles.sub.Render,
		"flagUsages": styles.flagUsages,
		"rpad":       rpad,
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages styles pflag's usage block, coloring flag names and dimming
// type hints.
func (s helpStyles) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for idx, line := range lines {
		lines[idx] = s.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine splits "  -f, --flag type   description" at the first run of
// two or more spaces after the flag tokens and styles each side.
func (s helpStyles) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	cut := strings.Index(trimmed, "  ")
	if cut < 0 {
		return line
	}

	flagPart := trimmed[:cut]
	descPart := strings.TrimLeft(trimmed[cut:], " ")

	styled := make([]string, 0, 3)
	for _, token := range strings.Fields(flagPart) {
		clean := strings.TrimSuffix(token, ",")
		if strings.HasPrefix(clean, "-") {
			token = s.flag.Render(clean) + token[len(clean):]
		} else {
			token = s.dim.Render(token)
		}
		styled = append(styled, token)
	}

	return indent + strings.Join(styled, " ") + "   " + descPart
}

// rpad pads str with spaces on the right to the given width.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
