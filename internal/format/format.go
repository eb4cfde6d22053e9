package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Timestamp layouts shared by command output.
const (
	TimeLayout      = "2006-01-02 15:04:05"
	ShortTimeLayout = "2006-01-02 15:04"
)

// Table renders rows as fixed-width columns separated by two spaces.
// The first row is the header; a rule of dashes sized to each column is
// drawn under it. Every column is as wide as its widest cell.
func Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := len(rows[0])
	widths := make([]int, cols)
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var out strings.Builder
	for r, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			out.WriteString(padRight(cell, widths[i]))
			if i < cols-1 {
				out.WriteString("  ")
			}
		}
		out.WriteString("\n")

		if r == 0 {
			for i, w := range widths {
				out.WriteString(strings.Repeat("-", w))
				if i < cols-1 {
					out.WriteString("  ")
				}
			}
			out.WriteString("\n")
		}
	}

	return out.String()
}

// KeyValue renders pairs as "key : value" lines with every key padded to
// the longest key.
func KeyValue(pairs [][2]string) string {
	if len(pairs) == 0 {
		return ""
	}

	maxKey := 0
	for _, p := range pairs {
		if w := runewidth.StringWidth(p[0]); w > maxKey {
			maxKey = w
		}
	}

	var out strings.Builder
	for _, p := range pairs {
		out.WriteString(padRight(p[0], maxKey))
		out.WriteString(" : ")
		out.WriteString(p[1])
		out.WriteString("\n")
	}

	return out.String()
}

// Truncate shortens s to at most max bytes, replacing the cut tail with
// "...".
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// Size renders a byte count with binary units, e.g. "512 B", "1.5 KiB".
func Size(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	div, exp := int64(1024), 0
	for n := bytes / 1024; n >= 1024; n /= 1024 {
		div *= 1024
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
