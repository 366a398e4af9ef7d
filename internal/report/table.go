package report

import (
	"math"
	"strconv"
	"strings"
)

// Historical table geometry: numeric cells are 17 characters wide, the
// split-label cell 26. Reports produced by earlier tooling used exactly
// these widths, so they are fixed rather than derived from content.
const (
	valueWidth = 17
	labelWidth = 26
)

// FormatMetric renders a raw metric value in [0,1] the way historical
// reports did: round to 5 decimal places first, scale by 100 second, then
// print the shortest decimal representation, keeping a trailing ".0" on
// integral values.
func FormatMetric(v float64) string {
	scaled := math.Round(v*1e5) / 1e3
	s := strconv.FormatFloat(scaled, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// tableBorder draws a +---+ style separator for n numeric columns plus the
// label column.
func tableBorder(n int, fill byte) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for i := 0; i < n; i++ {
		sb.WriteString(strings.Repeat(string(fill), valueWidth))
		sb.WriteByte('+')
	}
	sb.WriteString(strings.Repeat(string(fill), labelWidth))
	sb.WriteString("+\n")
	return sb.String()
}

// headerLine renders the column-name row, each name centered in its cell.
func headerLine(headers []string) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for _, h := range headers {
		sb.WriteString(center(h, valueWidth))
		sb.WriteByte('|')
	}
	sb.WriteString(" split")
	sb.WriteString(strings.Repeat(" ", labelWidth-len(" split")))
	sb.WriteString("|\n")
	return sb.String()
}

// center pads s to width, splitting the padding evenly. Names longer than
// the cell are truncated to keep the grid aligned.
func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
