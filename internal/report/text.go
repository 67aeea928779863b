package report

import (
	"bufio"
	"fmt"
	"io"
)

// TextReporter writes one line per statement, diagnostic and notice
type TextReporter struct{}

// NewTextReporter creates a new text reporter
func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

// Format writes the report as plain lines:
//
//	path:start-end: type [language]
//	file:line:column: context: message
//	path: n statements applied
func (r *TextReporter) Format(rep *Report, writer io.Writer) error {
	w := bufio.NewWriter(writer)
	for _, f := range rep.Files {
		for _, st := range f.Statements {
			fmt.Fprintf(w, "%s:%d-%d: %s", f.Path, st.StartLine, st.EndLine, st.Type)
			if st.Language != "" {
				fmt.Fprintf(w, " [%s]", st.Language)
			}
			fmt.Fprintln(w)
		}
		for _, d := range f.Diagnostics {
			if d.Context != "" {
				fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", d.File, d.Line, d.Column, d.Context, d.Message)
			} else {
				fmt.Fprintf(w, "%s:%d:%d: %s\n", d.File, d.Line, d.Column, d.Message)
			}
		}
		if a := f.Applied; a != nil {
			for _, n := range a.Notices {
				fmt.Fprintf(w, "%s:%d: %s: %s\n", f.Path, n.Line, n.Severity, n.Message)
			}
			fmt.Fprintf(w, "%s: %d statements applied", f.Path, a.Statements)
			if a.RolledBack {
				fmt.Fprint(w, " (rolled back)")
			}
			fmt.Fprintln(w)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}
	return nil
}

// Name returns the name of this reporter
func (r *TextReporter) Name() string {
	return "text"
}
