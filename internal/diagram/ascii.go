package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/goflow/internal/hydraulics"
)

// PipeSectionData holds data for drawing a part-full pipe
type PipeSectionData struct {
	Dimension float64 // D (m)
	Depth     float64 // d (m), 0 for an empty pipe

	FlowRate     float64 // q (m³/s)
	FullFlowRate float64 // q_full (m³/s)
	Velocity     float64 // v (m/s)
}

// FillRatio returns d/D clamped to [0, 1]
func (d PipeSectionData) FillRatio() float64 {
	if !(d.Dimension > 0) {
		return 0
	}
	return math.Max(0, math.Min(1, d.Depth/d.Dimension))
}

// FlowRatio returns q/q_full, 0 when the full-pipe flow is unknown
func (d PipeSectionData) FlowRatio() float64 {
	if !(d.FullFlowRate > 0) {
		return 0
	}
	return d.FlowRate / d.FullFlowRate
}

// sectionRows is the number of text rows used for the pipe circle
const sectionRows = 14

// DrawPipeSection creates an ASCII cross-section of the pipe with the
// water shaded below the free surface.
func DrawPipeSection(data PipeSectionData) string {
	var sb strings.Builder

	// Characters are roughly twice as tall as wide, so a circle of
	// sectionRows rows spans 2·sectionRows columns.
	radiusCols := float64(sectionRows)
	level := -1 + 2*data.FillRatio()
	surfaceDrawn := false

	sb.WriteString("\n")
	sb.WriteString("  PIPE SECTION\n")
	sb.WriteString("  ────────────\n\n")

	for i := 0; i < sectionRows; i++ {
		y := 1 - (2*float64(i)+1)/sectionRows
		cols := int(math.Round(math.Sqrt(1-y*y) * radiusCols))
		inner := max(2*cols-2, 0)

		left, right := "│", "│"
		switch {
		case y > 0.5:
			left, right = "╱", "╲"
		case y < -0.5:
			left, right = "╲", "╱"
		}

		wet := data.Depth > 0 && y <= level
		fill := strings.Repeat(" ", inner)
		if wet {
			fill = strings.Repeat("░", inner)
		}

		sb.WriteString("  ")
		sb.WriteString(strings.Repeat(" ", sectionRows-cols))
		sb.WriteString(left + fill + right)
		sb.WriteString(strings.Repeat(" ", sectionRows-cols))

		if wet && !surfaceDrawn {
			sb.WriteString(fmt.Sprintf("  ◄─ water level, d = %.3f m", data.Depth))
			surfaceDrawn = true
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ░░░ = Flow area\n")
	sb.WriteString(fmt.Sprintf("  D = %.3f m, d/D = %.3f\n", data.Dimension, data.FillRatio()))
	if data.FullFlowRate > 0 {
		sb.WriteString(fmt.Sprintf("  q/q_full = %.3f\n", data.FlowRatio()))
	}

	return sb.String()
}

// curveSamples is the number of depth steps used for the fill curves
const curveSamples = 50

// fillCurves samples Bretting's flow ratio and the matching velocity
// ratio v/v_full at evenly spaced depth ratios from 0 to 1.
func fillCurves(samples int) (depth, flow, velocity []float64) {
	depth = make([]float64, samples+1)
	flow = make([]float64, samples+1)
	velocity = make([]float64, samples+1)

	fullArea := math.Pi / 4
	for i := 0; i <= samples; i++ {
		pd := float64(i) / float64(samples)
		pq, err := hydraulics.FlowRateFromDepth(1, 1, pd)
		if err != nil {
			pq = 0
		}
		depth[i] = pd
		flow[i] = pq
		if area := hydraulics.PartialArea(1, pd); area > 0 {
			velocity[i] = pq / (area / fullArea)
		}
	}
	return depth, flow, velocity
}

// DrawFillCurve plots q/q_full against d/D in the terminal. The operating
// point of data is reported in the caption.
func DrawFillCurve(data PipeSectionData) string {
	_, flow, _ := fillCurves(curveSamples)

	caption := "q/q_full against d/D (0 to 1, left to right)"
	if data.Depth > 0 {
		caption = fmt.Sprintf("%s; operating point d/D = %.3f, q/q_full = %.3f",
			caption, data.FillRatio(), data.FlowRatio())
	}

	graph := asciigraph.Plot(flow,
		asciigraph.Height(10),
		asciigraph.Width(curveSamples+1),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
	return "\n" + graph + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// padRight pads s with spaces to width runes
func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
