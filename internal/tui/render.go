package tui

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kbfrost/layoutforge/internal/engine"
)

// RankEntry is one row of a rank listing: a layout's position in the
// registry's score-descending order.
type RankEntry struct {
	Index  int
	Name   string
	Layout *engine.Layout
}

// RenderRank builds a table of layouts ranked by score, highest first.
func RenderRank(entries []RankEntry) string {
	tw := table.NewWriter()
	tw.SetStyle(RoundedStyle())
	tw.SetTitle("Layouts")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"#", "Name", "Score"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.Index, e.Name, fmt.Sprintf("%+.3f", e.Layout.Score)})
	}
	return tw.Render()
}

// statRows is the display order and labels shared by the analyze and
// compare tables.
var statRows = []struct {
	label string
	get   func(engine.Stats) float64
}{
	{"trigram reward", func(s engine.Stats) float64 { return s.TrigramReward }},
	{"effort", func(s engine.Stats) float64 { return -s.Effort }},
	{"usage penalty", func(s engine.Stats) float64 { return -s.UsagePenalty }},
	{"finger speed", func(s engine.Stats) float64 { return -s.Fspeed }},
	{"scissors", func(s engine.Stats) float64 { return -s.Scissors }},
	{"total", func(s engine.Stats) float64 { return s.Total }},
}

// RenderAnalyze renders a single layout's full score breakdown and its
// key matrix.
func RenderAnalyze(name string, layout *engine.Layout, stats engine.Stats) string {
	tw := table.NewWriter()
	tw.SetStyle(RoundedStyle())
	tw.SetTitle(name)
	tw.SetColumnConfigs([]table.ColumnConfig{{Name: "Value", Align: text.AlignRight}})
	tw.AppendHeader(table.Row{"Metric", "Value"})
	for _, row := range statRows {
		tw.AppendRow(table.Row{row.label, fmt.Sprintf("%+.3f", row.get(stats))})
	}
	var b strings.Builder
	b.WriteString(layout.Render())
	b.WriteString("\n\n")
	b.WriteString(tw.Render())
	return b.String()
}

// RenderCompare renders two layouts' score breakdowns side by side,
// with a delta column colored green when layout b improves on a and
// red when it regresses.
func RenderCompare(nameA string, a engine.Stats, nameB string, b engine.Stats) string {
	tw := table.NewWriter()
	tw.SetStyle(RoundedStyle())
	tw.SetTitle(fmt.Sprintf("%s vs %s", nameA, nameB))
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: nameA, Align: text.AlignRight},
		{Name: nameB, Align: text.AlignRight},
		{Name: "Δ", Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"Metric", nameA, nameB, "Δ"})
	for _, row := range statRows {
		va, vb := row.get(a), row.get(b)
		delta := vb - va
		c := text.Reset
		switch {
		case delta > 0.0005:
			c = text.FgGreen
		case delta < -0.0005:
			c = text.FgRed
		}
		tw.AppendRow(table.Row{
			row.label,
			fmt.Sprintf("%+.3f", va),
			fmt.Sprintf("%+.3f", vb),
			c.Sprintf("%+.3f", delta),
		})
	}
	return tw.Render()
}

// RenderHeatmap renders the layout's key matrix with each key colored
// by its finger-column's usage against that finger's max-finger-use
// band: green within the band, yellow above it, red more than 15%
// above it.
func RenderHeatmap(layout *engine.Layout, scorer *engine.Scorer) string {
	model := scorer.Model
	var ids [engine.NumPositions]uint8
	for pos, r := range layout.Matrix {
		id, err := model.Codec.Encode(r)
		if err == nil {
			ids[pos] = id
		}
	}

	var usage [engine.NumFingerCols]float64
	for pos, id := range ids {
		usage[engine.FingerCol(pos)] += model.Freq(id)
	}

	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 10; col++ {
			if col == 5 {
				b.WriteByte(' ')
			}
			pos := row*10 + col
			fc := engine.FingerCol(pos)
			band := scorer.Weights.MaxFingerUse.Band(engine.FingerBand(fc))
			c := heatColor(usage[fc], band)
			b.WriteString(c.Sprintf("%c", layout.Matrix[pos]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func heatColor(usage, band float64) text.Color {
	switch {
	case band <= 0:
		return text.Reset
	case usage > band*1.15:
		return text.FgRed
	case usage > band:
		return text.FgYellow
	default:
		return text.FgGreen
	}
}
