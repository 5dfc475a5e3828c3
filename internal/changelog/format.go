package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// categoryStyles maps Keep a Changelog subheadings to their terminal color.
var categoryStyles = map[string]*color.Color{
	"added":      color.New(color.FgGreen),
	"changed":    color.New(color.FgBlue),
	"deprecated": color.New(color.FgRed),
	"removed":    color.New(color.FgRed),
	"fixed":      color.New(color.FgYellow),
	"security":   color.New(color.FgMagenta),
}

var (
	headingStyle = color.New(color.FgCyan, color.Bold)
	dimStyle     = color.New(color.Faint)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain       bool // Disable colors
	MaxSections int  // Show at most this many sections (0 = all)
}

// Render writes the sections of r to w, newest first, separated by blank lines.
// Nothing is written for an empty result.
func Render(w io.Writer, r Result, opts FormatOptions) error {
	shown, hidden := limitSections(r.Sections, opts.MaxSections)

	for i, sec := range shown {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeSection(w, sec, opts); err != nil {
			return fmt.Errorf("writing section %s: %w", sec.Label, err)
		}
	}

	if hidden > 0 {
		return writeTruncation(w, hidden, opts)
	}
	return nil
}

// RenderString is a convenience wrapper around Render.
func RenderString(r Result, opts FormatOptions) string {
	var b strings.Builder
	_ = Render(&b, r, opts)
	return b.String()
}

func limitSections(sections []Section, max int) ([]Section, int) {
	if max <= 0 || len(sections) <= max {
		return sections, 0
	}
	return sections[:max], len(sections) - max
}

// writeSection writes one section body line by line.
func writeSection(w io.Writer, sec Section, opts FormatOptions) error {
	for _, line := range strings.Split(sec.Body, "\n") {
		if !opts.Plain {
			line = styleLine(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// styleLine colors release headings and category subheadings.
func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, sectionMarker):
		return headingStyle.Sprint(line)
	case strings.HasPrefix(line, "### "):
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "### ")))
		if c, ok := categoryStyles[name]; ok {
			return c.Sprint(line)
		}
	}
	return line
}

func writeTruncation(w io.Writer, hidden int, opts FormatOptions) error {
	msg := fmt.Sprintf("...and %d more release(s). Use --max 0 to show all.", hidden)
	if !opts.Plain {
		msg = dimStyle.Sprint(msg)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", msg)
	return err
}

// Summary returns the first line of a section's notes after its heading,
// truncated to maxLen.
func Summary(sec Section, maxLen int) string {
	lines := strings.Split(sec.Body, "\n")
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return truncateText(strings.TrimLeft(line, "-* "), maxLen)
	}
	return ""
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 3 || len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
