package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wetRows(drawing string) int {
	n := 0
	for _, line := range strings.Split(drawing, "\n") {
		if strings.Contains(line, "░") && !strings.Contains(line, "Flow area") {
			n++
		}
	}
	return n
}

func TestDrawPipeSectionHalfFull(t *testing.T) {
	out := DrawPipeSection(PipeSectionData{Dimension: 0.2, Depth: 0.1, FlowRate: 0.42, FullFlowRate: 1})

	assert.Equal(t, sectionRows/2, wetRows(out))
	assert.Contains(t, out, "water level, d = 0.100 m")
	assert.Contains(t, out, "d/D = 0.500")
	assert.Contains(t, out, "q/q_full = 0.420")
}

func TestDrawPipeSectionEmptyAndFull(t *testing.T) {
	empty := DrawPipeSection(PipeSectionData{Dimension: 0.3})
	assert.Zero(t, wetRows(empty))
	assert.NotContains(t, empty, "water level")
	assert.NotContains(t, empty, "q/q_full")

	full := DrawPipeSection(PipeSectionData{Dimension: 0.3, Depth: 0.3})
	assert.Equal(t, sectionRows, wetRows(full))
}

func TestFillRatioClamped(t *testing.T) {
	assert.Equal(t, 1.0, PipeSectionData{Dimension: 0.2, Depth: 0.5}.FillRatio())
	assert.Equal(t, 0.0, PipeSectionData{Dimension: 0, Depth: 0.5}.FillRatio())
	assert.Equal(t, 0.0, PipeSectionData{FlowRate: 1}.FlowRatio())
}

func TestFillCurvesEndpoints(t *testing.T) {
	depth, flow, velocity := fillCurves(10)
	require.Len(t, depth, 11)

	assert.InDelta(t, 0, flow[0], 1e-12)
	assert.InDelta(t, 1, flow[10], 1e-12)
	assert.InDelta(t, 0.42, flow[5], 1e-12)
	assert.Zero(t, velocity[0])
	assert.InDelta(t, 1, velocity[10], 1e-9)
	assert.InDelta(t, 0.84, velocity[5], 1e-9)

	for i := 1; i < len(flow); i++ {
		assert.Greater(t, flow[i], flow[i-1])
	}
}

func TestDrawFillCurveCaption(t *testing.T) {
	out := DrawFillCurve(PipeSectionData{Dimension: 0.2, Depth: 0.1, FlowRate: 0.42, FullFlowRate: 1})
	assert.Contains(t, out, "operating point d/D = 0.500, q/q_full = 0.420")

	bare := DrawFillCurve(PipeSectionData{Dimension: 0.225})
	assert.NotContains(t, bare, "operating point")
}

func TestDrawSummaryBoxAligned(t *testing.T) {
	input := []string{"v = 1.22 m/s", "q = 0.0484 m³/s"}
	box := DrawSummaryBox("RESULT", input)

	// top border, title, separator, one row per line, bottom border
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, len(input)+4)
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)), line)
	}
	assert.Contains(t, box, "q = 0.0484 m³/s")
}

func TestExportDiagrams(t *testing.T) {
	dir := t.TempDir()
	data := PipeSectionData{Dimension: 0.225, Depth: 0.158768, FlowRate: 0.0363, FullFlowRate: 0.0484}

	for _, name := range []string{"section.png", "nested/section.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportPipeSection(data, path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	curves := filepath.Join(dir, "curves")
	require.NoError(t, ExportFillCurves(data, curves))
	_, err := os.Stat(OutputPath(curves))
	assert.NoError(t, err)

	assert.Error(t, ExportPipeSection(PipeSectionData{}, filepath.Join(dir, "bad.png")))
}

func TestFlowAreaPolygon(t *testing.T) {
	assert.Nil(t, flowAreaPolygon(1, 0))

	pts := flowAreaPolygon(1, 1)
	require.NotEmpty(t, pts)
	first, last := pts[0], pts[len(pts)-1]
	assert.InDelta(t, -1, first.X, 1e-9)
	assert.InDelta(t, 1, first.Y, 1e-9)
	assert.InDelta(t, 1, last.X, 1e-9)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "out/section.svg", OutputPath("out/section.svg"))
	assert.Equal(t, "curves.pdf", OutputPath("curves.pdf"))
	assert.Equal(t, "curves.png", OutputPath("curves"))
	assert.Equal(t, "curves.jpg.png", OutputPath("curves.jpg"))
}
