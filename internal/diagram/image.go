package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	waterFill = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	waterEdge = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	operating = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportPipeSection exports the pipe cross-section with the flow area to an
// image file. Coordinates are in metres with the invert at y = 0.
func ExportPipeSection(data PipeSectionData, filename string) error {
	if !(data.Dimension > 0) {
		return fmt.Errorf("invalid pipe dimension: %g m", data.Dimension)
	}

	p := plot.New()
	p.Title.Text = "Pipe Section"
	p.X.Label.Text = "Width (m)"
	p.Y.Label.Text = "Height (m)"

	r := data.Dimension / 2

	outline := make(plotter.XYs, 0, 121)
	for i := 0; i <= 120; i++ {
		a := 2 * math.Pi * float64(i) / 120
		outline = append(outline, plotter.XY{X: r * math.Cos(a), Y: r + r*math.Sin(a)})
	}
	pipeLine, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	pipeLine.LineStyle.Width = vg.Points(2)
	pipeLine.LineStyle.Color = color.Black
	p.Add(pipeLine)

	if water := flowAreaPolygon(r, data.FillRatio()*data.Dimension); len(water) >= 3 {
		poly, err := plotter.NewPolygon(water)
		if err != nil {
			return err
		}
		poly.Color = waterFill
		poly.LineStyle.Color = waterEdge
		p.Add(poly)

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: r * 1.1, Y: data.Depth}},
			Labels: []string{fmt.Sprintf("d=%.3fm", data.Depth)},
		})
		if err != nil {
			return err
		}
		p.Add(label)
	}

	p.X.Min, p.X.Max = -r*1.2, r*1.6
	p.Y.Min, p.Y.Max = -r*0.1, data.Dimension+r*0.1

	return save(p, filename)
}

// flowAreaPolygon returns the circular segment below depth for a pipe of
// radius r, traced along the wall from one water-line end to the other.
func flowAreaPolygon(r, depth float64) plotter.XYs {
	if depth <= 0 {
		return nil
	}
	// Half the central angle, measured from the downward vertical.
	half := math.Acos(math.Max(-1, math.Min(1, (r-depth)/r)))

	pts := make(plotter.XYs, 0, 61)
	for i := 0; i <= 60; i++ {
		a := -half + 2*half*float64(i)/60
		pts = append(pts, plotter.XY{X: r * math.Sin(a), Y: r - r*math.Cos(a)})
	}
	return pts
}

// ExportFillCurves exports the dimensionless part-full curves, flow ratio
// and velocity ratio against depth ratio, with the operating point of data.
func ExportFillCurves(data PipeSectionData, filename string) error {
	p := plot.New()
	p.Title.Text = "Part-Full Pipe Characteristics"
	p.X.Label.Text = "q/q_full, v/v_full"
	p.Y.Label.Text = "d/D"

	depth, flow, velocity := fillCurves(curveSamples)

	flowPts := make(plotter.XYs, len(depth))
	velocityPts := make(plotter.XYs, len(depth))
	for i := range depth {
		flowPts[i] = plotter.XY{X: flow[i], Y: depth[i]}
		velocityPts[i] = plotter.XY{X: velocity[i], Y: depth[i]}
	}

	flowLine, err := plotter.NewLine(flowPts)
	if err != nil {
		return err
	}
	flowLine.LineStyle.Width = vg.Points(2)
	flowLine.LineStyle.Color = waterEdge
	p.Add(flowLine)
	p.Legend.Add("q/q_full", flowLine)

	velocityLine, err := plotter.NewLine(velocityPts)
	if err != nil {
		return err
	}
	velocityLine.LineStyle.Width = vg.Points(1.5)
	velocityLine.LineStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	velocityLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(velocityLine)
	p.Legend.Add("v/v_full", velocityLine)

	if data.Depth > 0 && data.FullFlowRate > 0 {
		point, err := plotter.NewScatter(plotter.XYs{{X: data.FlowRatio(), Y: data.FillRatio()}})
		if err != nil {
			return err
		}
		point.GlyphStyle.Color = operating
		point.GlyphStyle.Radius = vg.Points(5)
		point.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(point)
		p.Legend.Add("operating point", point)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	return save(p, filename)
}

// OutputPath returns the file an export to filename actually writes.
// Unknown extensions get ".png" appended.
func OutputPath(filename string) string {
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return filename
	default:
		return filename + ".png"
	}
}

// save writes p to OutputPath(filename), choosing the format from the
// extension.
func save(p *plot.Plot, filename string) error {
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return p.Save(width, height, OutputPath(filename))
}
