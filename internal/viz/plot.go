package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow,
	asciigraph.Green, asciigraph.Red, asciigraph.Blue,
}

// PlotSweep plots one series per joint against the swept coordinate values.
func PlotSweep(xs []float64, series [][]float64, names []string, caption string) string {
	if len(xs) == 0 || len(series) == 0 {
		return "no data"
	}

	colors := make([]asciigraph.AnsiColor, len(series))
	for k := range colors {
		colors[k] = seriesColors[k%len(seriesColors)]
	}
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s  [%.3g .. %.3g]", caption, xs[0], xs[len(xs)-1])),
	)

	legend := ""
	for k, name := range names {
		if k >= len(series) {
			break
		}
		legend += fmt.Sprintf("  %s%s%s", colors[k], name, asciigraph.Default)
	}
	return graph + "\n" + legend
}
