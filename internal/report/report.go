// Package report accumulates the per-run plain-text report and the language
// census.
package report

import (
	"fmt"
	"os"
	"strings"
)

// Report is the run log: an ordered list of plain-text lines written to the
// log file and echoed to the console.
type Report struct {
	lines []string
}

func New() *Report {
	return &Report{}
}

// Linef appends one formatted line.
func (r *Report) Linef(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// Line appends one literal line.
func (r *Report) Line(s string) {
	r.lines = append(r.lines, s)
}

// Append appends a batch of prepared lines.
func (r *Report) Append(lines []string) {
	r.lines = append(r.lines, lines...)
}

// Blank appends an empty line.
func (r *Report) Blank() {
	r.lines = append(r.lines, "")
}

// Lines returns the accumulated lines.
func (r *Report) Lines() []string {
	return r.lines
}

func (r *Report) String() string {
	return strings.Join(r.lines, "\n") + "\n"
}

// WriteFile writes the report to path, replacing any previous run's log.
func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.String()), 0o644); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
