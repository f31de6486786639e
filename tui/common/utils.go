package common

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/x/ansi"
)

// TruncateRow cuts a possibly styled line to width terminal cells,
// appending an ellipsis when anything was removed.
func TruncateRow(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(line) <= width {
		return line
	}
	if width <= 1 {
		return ansi.Cut(line, 0, width)
	}
	return ansi.Cut(line, 0, width-1) + "…"
}

// CompactCount renders a count the way feed UIs do: 950 → "950",
// 1200 → "1.2k".
func CompactCount(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%.1fk", float64(n)/1000)
}
