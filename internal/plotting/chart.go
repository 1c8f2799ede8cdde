// Package plotting is the chart backend of the entity packages. A Chart
// accepts (x, y, style) curves, remembers what was drawn and renders through
// gonum/plot.
package plotting

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"climada/internal/util/checker"
)

// Style controls how a curve is stroked.
type Style struct {
	Color  color.Color
	Dashed bool
	Width  vg.Length
}

// Curve is one (x, y, style) triple.
type Curve struct {
	X     []float64
	Y     []float64
	Label string
	Style Style
}

// Chart is a handle on a single set of axes.
type Chart struct {
	plot   *plot.Plot
	curves []Curve
}

func New() *Chart {
	p := plot.New()
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return &Chart{plot: p}
}

// OrNew returns c, or a fresh chart when c is nil.
func OrNew(c *Chart) *Chart {
	if c == nil {
		return New()
	}
	return c
}

func (c *Chart) SetTitle(title string) {
	c.plot.Title.Text = title
}

func (c *Chart) Title() string {
	return c.plot.Title.Text
}

func (c *Chart) SetLabels(x, y string) {
	c.plot.X.Label.Text = x
	c.plot.Y.Label.Text = y
}

func (c *Chart) Labels() (x, y string) {
	return c.plot.X.Label.Text, c.plot.Y.Label.Text
}

// SetXRange fixes the x axis. Call it after Draw, drawing widens the axes to
// fit the data.
func (c *Chart) SetXRange(min, max float64) {
	c.plot.X.Min = min
	c.plot.X.Max = max
}

func (c *Chart) XRange() (min, max float64) {
	return c.plot.X.Min, c.plot.X.Max
}

// Draw adds curves as lines with a legend entry each.
func (c *Chart) Draw(curves ...Curve) error {
	for _, cv := range curves {
		if err := checker.Size(len(cv.X), cv.Y, cv.Label+".y"); err != nil {
			return err
		}
		pts := make(plotter.XYs, len(cv.X))
		for i := range cv.X {
			pts[i].X = cv.X[i]
			pts[i].Y = cv.Y[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("curve %q: %w", cv.Label, err)
		}
		if cv.Style.Color != nil {
			line.LineStyle.Color = cv.Style.Color
		}
		if cv.Style.Width > 0 {
			line.LineStyle.Width = cv.Style.Width
		}
		if cv.Style.Dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		c.plot.Add(line)
		if cv.Label != "" {
			c.plot.Legend.Add(cv.Label, line)
		}
		c.curves = append(c.curves, cv)
	}
	return nil
}

// Curves returns the curves drawn so far, in drawing order.
func (c *Chart) Curves() []Curve {
	out := make([]Curve, len(c.curves))
	copy(out, c.curves)
	return out
}

// Plot exposes the underlying gonum plot for further styling.
func (c *Chart) Plot() *plot.Plot {
	return c.plot
}

// Save renders the chart to path. The format follows the file extension
// (png, svg, pdf, ...).
func (c *Chart) Save(path string, width, height vg.Length) error {
	return c.plot.Save(width, height, path)
}
