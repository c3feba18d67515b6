package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-application-form/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// labelWidth pads labels so values line up
	labelWidth = 26
)

// Printer writes summaries and error lists for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// PrintSummary outputs the Application Summary box.
func (p *Printer) PrintSummary(s Summary) {
	var sb strings.Builder
	for _, e := range s.Entries {
		sb.WriteString(fmt.Sprintf("%-*s %s\n", labelWidth, e.Label+":", e.Value))
	}
	if s.SessionID != "" {
		sb.WriteString(fmt.Sprintf("\nSession: %s\n", s.SessionID))
	}
	p.printBox("APPLICATION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintErrors outputs the failing fields in display order. An empty map
// prints nothing.
func (p *Printer) PrintErrors(errs types.ErrorMap) {
	if errs.Empty() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", len(errs)))
	fields := errs.Fields()
	for i, f := range fields {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", f.Label()))
		sb.WriteString(fmt.Sprintf("  %s\n", errs[f].Message))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("APPLICATION NOT ACCEPTED", strings.TrimSuffix(sb.String(), "\n"))
}

// WriteJSON writes v as indented JSON.
func (p *Printer) WriteJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintf(p.out, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
