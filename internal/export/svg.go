// Package export writes sweep results as standalone SVG charts.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

var ErrNoData = errors.New("export: nothing to plot")

var palette = []string{"#00ffff", "#ff00ff", "#ffcc00", "#00ff88", "#ff4444", "#0088ff"}

type Chart struct {
	Title  string
	X      []float64
	Series [][]float64
	Names  []string
	Width  int
	Height int
}

type extent struct{ minX, maxX, minY, maxY float64 }

func (c *Chart) span() extent {
	b := extent{minX: c.X[0], maxX: c.X[0], minY: math.Inf(1), maxY: math.Inf(-1)}
	for _, x := range c.X {
		b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
	}
	for _, s := range c.Series {
		for _, y := range s {
			b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
		}
	}

	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

// WriteSVG draws one polyline per series over a shared x axis, with a zero
// line and a legend.
func (c *Chart) WriteSVG(w io.Writer) error {
	if len(c.X) < 2 || len(c.Series) == 0 {
		return ErrNoData
	}
	width, height := c.Width, c.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}

	b := c.span()
	px := func(x float64) float64 { return (x - b.minX) / (b.maxX - b.minX) * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if b.minY < 0 && b.maxY > 0 {
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, py(0), width, py(0)))
	}
	if c.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="10" y="20" fill="#cccccc" font-family="monospace" font-size="14">%s</text>
`, escape(c.Title)))
	}

	for k, s := range c.Series {
		color := palette[k%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, y := range s {
			if i >= len(c.X) {
				break
			}
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(c.X[i]), py(y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(c.X[i]), py(y)))
			}
		}
		sb.WriteString("\"/>\n")

		if k < len(c.Names) {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, width-150, 20+16*k, color, escape(c.Names[k])))
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (c *Chart) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return c.WriteSVG(file)
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
