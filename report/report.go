// Package report renders scan results. Dirty repository paths go to stdout,
// one per line, so the output can be piped or scripted; everything else
// (summary, evaluation failures) goes to stderr.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/sweep/pkg/scan"
	"github.com/mattn/go-isatty"
)

// Styles contains lipgloss styles for the summary output
type Styles struct {
	Header  lipgloss.Style
	Clean   lipgloss.Style
	Dirty   lipgloss.Style
	Errored lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default styling for summaries
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Clean:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Dirty:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Errored: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
	}
}

// Printer writes scan reports.
type Printer struct {
	out      io.Writer
	errOut   io.Writer
	styles   Styles
	colorize bool
}

// NewPrinter creates a printer for the given sinks. Color is enabled only
// when the error sink is an interactive terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	colorize := false
	if f, ok := errOut.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{
		out:      out,
		errOut:   errOut,
		styles:   DefaultStyles(),
		colorize: colorize,
	}
}

// DirtyPaths writes the paths of dirty repositories, one per line.
func (p *Printer) DirtyPaths(res *scan.Result) {
	for _, e := range res.Dirty() {
		fmt.Fprintln(p.out, e.Path)
	}
}

// JSON writes the full result, verdicts and summary included.
func (p *Printer) JSON(res *scan.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan result: %w", err)
	}
	fmt.Fprintln(p.out, string(data))
	return nil
}

// Summary writes the aggregate counts to the error sink.
func (p *Printer) Summary(res *scan.Result) {
	s := res.Summary

	line := fmt.Sprintf("swept %d repositories: %s, %s, %s",
		s.Total,
		p.render(p.styles.Clean, fmt.Sprintf("%d clean", s.Clean)),
		p.render(p.styles.Dirty, fmt.Sprintf("%d dirty", s.Dirty)),
		p.render(p.styles.Errored, fmt.Sprintf("%d errored", s.Errored)),
	)
	if s.SkippedDirs > 0 {
		line += p.render(p.styles.Muted, fmt.Sprintf(" (%d unreadable dirs skipped)", s.SkippedDirs))
	}
	fmt.Fprintln(p.errOut, line)
}

// Errors lists the repositories whose state could not be determined. They
// are a distinct category, never folded into clean or dirty.
func (p *Printer) Errors(res *scan.Result) {
	errored := res.Errored()
	if len(errored) == 0 {
		return
	}
	fmt.Fprintln(p.errOut, p.render(p.styles.Errored, "could not evaluate:"))
	for _, e := range errored {
		fmt.Fprintf(p.errOut, "  %s: %s\n", e.Path, p.render(p.styles.Muted, e.Verdict.Cause))
	}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.colorize {
		return s
	}
	return style.Render(s)
}
