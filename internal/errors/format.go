package errors

import (
	"strings"

	"github.com/pterm/pterm"
)

// Format returns the error formatted for terminal display. Colors follow
// pterm's global styling switch.
func (e *ShowcaseError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("ERROR "))
		b.WriteString(pterm.Bold.Sprint(e.Code + ": "))
	} else {
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("ERROR: "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	detail := e.Detail
	if detail == "" && e.Wrapped != nil {
		detail = e.Wrapped.Error()
	}
	if detail != "" {
		for _, line := range wrapText(detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(pterm.FgCyan.Sprint("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a single-line form for the interactive prompt.
func (e *ShowcaseError) FormatCompact() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
