package layout

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

func writeCentered(text string, decorationLength int, filler string, length int, builder *strings.Builder) {
	free := max(length-len(text)-decorationLength, 0)
	leftpad := free / 2
	rightpad := free - leftpad

	builder.WriteString(strings.Repeat(filler, leftpad))
	builder.WriteString(text)
	builder.WriteString(strings.Repeat(filler, rightpad))
}

// Draws an ascii diagram of a register layout, most significant bits on the left:
//
//	7            3            0
//	+------------+------------+
//	|   (pad)    |    MODE    |
//	+------------+------------+
//	 <- 4 bits -> <- 4 bits ->
func Diagram(entries []LayoutEntry, unit string, leftpad int) string {
	const (
		bodySplitter   = "|"
		borderSplitter = "+"
		borderBody     = "-"
		arrowTipLeft   = "<-"
		arrowBody      = "-"
		arrowTipRight  = "->"
	)

	type cell struct {
		index  string
		name   string
		width  string
		length int
	}

	cells := make([]cell, len(entries))

	for i := range cells {
		entry := &entries[len(entries)-i-1]

		name := entry.Name
		if entry.Padding {
			name = "(pad)"
		}

		c := &cells[i]
		c.index = fmt.Sprint(entry.End() - 1)
		c.name = fmt.Sprintf(" %v ", name)
		c.width = fmt.Sprintf(" %v %v ", entry.Width, unit)
		c.length = lo.Max([]int{len(c.index) + 1, len(c.name), len(arrowTipLeft) + len(c.width) + len(arrowTipRight)})
	}

	pad := strings.Repeat(" ", leftpad)

	var indices, border, body, widths strings.Builder

	for _, row := range []*strings.Builder{&indices, &border, &body, &widths} {
		row.WriteString(pad)
	}

	for _, c := range cells {
		indices.WriteString(c.index)
		indices.WriteString(strings.Repeat(" ", c.length-len(c.index)+1))
		border.WriteString(borderSplitter)
		border.WriteString(strings.Repeat(borderBody, c.length))
		body.WriteString(bodySplitter)
		writeCentered(c.name, 0, " ", c.length, &body)
		widths.WriteString(" ")
		widths.WriteString(arrowTipLeft)
		writeCentered(c.width, len(arrowTipLeft)+len(arrowTipRight), arrowBody, c.length, &widths)
		widths.WriteString(arrowTipRight)
	}

	indices.WriteString("0")
	border.WriteString(borderSplitter)
	body.WriteString(bodySplitter)

	var result strings.Builder

	for _, row := range []string{indices.String(), border.String(), body.String(), border.String(), widths.String()} {
		result.WriteString(strings.TrimRight(row, " "))
		result.WriteString("\n")
	}

	return result.String()
}
