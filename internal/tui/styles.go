// Package tui renders rank tables, layout comparisons, and column-use
// heatmaps for the interactive command loop.
package tui

import "github.com/jedib0t/go-pretty/v6/table"

// RoundedStyle returns the table style shared by every table this
// package renders.
func RoundedStyle() table.Style {
	s := table.StyleRounded
	s.Box.PaddingLeft = " "
	s.Box.PaddingRight = " "
	return s
}
