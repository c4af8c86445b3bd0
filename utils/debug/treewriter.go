// Package debug renders human readable run summaries stored in debug
// reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label with quoted value, so multi-line text stays on one
// line.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Size writes label followed by size in kilobytes.
func (tw TreeWriter) Size(depth int, label string, n int) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(" (")
	tw.w.WriteString(FormatSize(n))
	tw.w.WriteString(")\n")
}

// FormatSize renders byte count as kilobytes with one decimal: "1.5KB".
func FormatSize(n int) string {
	return strconv.FormatFloat(float64(n)/1024, 'f', 1, 64) + "KB"
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
