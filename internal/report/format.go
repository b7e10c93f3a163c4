// Package report renders traces, orphan reports, searches and the schema as
// text tables, JSON, YAML or Mermaid graphs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"gopkg.in/yaml.v3"
)

// Format selects how a view is written.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMermaid Format = "mermaid"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatMermaid:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json, yaml or mermaid)", s)
	}
}

// Renderer writes views to w.
type Renderer struct {
	w io.Writer

	// Color enables ANSI styling of headings in text output.
	Color bool
	// MaxColumnWidth truncates wide cells in text tables. Zero disables it.
	MaxColumnWidth int
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:              w,
		MaxColumnWidth: 40,
	}
}

var (
	headingStyle = color.New(color.FgCyan, color.OpBold)
	seedStyle    = color.New(color.FgBlue, color.OpBold)
	mutedStyle   = color.New(color.FgGray)
	warnStyle    = color.New(color.FgYellow, color.OpBold)
	okStyle      = color.New(color.FgGreen, color.OpBold)
)

func (r *Renderer) paint(style color.Style, s string) string {
	if !r.Color {
		return s
	}
	return style.Sprint(s)
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

// printHeader prints a boxed title.
func (r *Renderer) printHeader(title string) {
	width := len(title) + 4
	r.printf("%s\n", strings.Repeat("=", width))
	r.printf("  %s\n", r.paint(headingStyle, title))
	r.printf("%s\n", strings.Repeat("=", width))
}

// printSection prints a section header.
func (r *Renderer) printSection(title string) {
	r.printf("[%s]\n", r.paint(headingStyle, title))
	r.printf("%s\n", strings.Repeat("-", len(title)+2))
}

func (r *Renderer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) writeYAML(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// encode handles the structured formats shared by every view.
func (r *Renderer) encode(format Format, v interface{}) (bool, error) {
	switch format {
	case FormatJSON:
		return true, r.writeJSON(v)
	case FormatYAML:
		return true, r.writeYAML(v)
	}
	return false, nil
}
