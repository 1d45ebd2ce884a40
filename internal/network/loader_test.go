package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

const streetYAML = `
name: Street A
fluid: water
start:
  name: Nr1
  type: breakpoint
  added_flow: 0.03
objects:
  - pipe:
      name: P1
      material: concrete
      dimension: 0.225
      gradient: 0.01
      length: 20
  - node:
      name: Nr2
      added_flow: 0.15
  - pipe:
      material: plastic
      dimension: 0.25
      z1: 0.12
      z2: 0.42
      length: 14.7
  - node:
      name: Nr3
      type: manhole
      ground_level: 2.5
      added_flow: 0.12
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	network, err := LoadFromFile(writeFile(t, "street.yaml", streetYAML))
	require.NoError(t, err)

	assert.Equal(t, "Street A", network.Name)
	assert.Equal(t, "Nr1", network.Start.Name)
	require.Len(t, network.Objects, 4)

	pipes := network.Pipes()
	require.Len(t, pipes, 2)
	assert.Equal(t, "P1", pipes[0].Name)
	assert.Equal(t, "P2", pipes[1].Name)
	assert.Equal(t, 20.0, pipes[0].State.Geometry().Length)
	assert.Equal(t, catalog.Plastic, pipes[1].State.Geometry().Material)
	assert.InDelta(t, 0.3/14.7, pipes[1].State.Geometry().Gradient, 1e-12)

	nodes := network.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, Breakpoint, nodes[0].Type)
	assert.Equal(t, Manhole, nodes[1].Type)
	require.NotNil(t, nodes[1].GroundLevel)
	assert.Equal(t, 2.5, *nodes[1].GroundLevel)

	assert.Equal(t, map[string]float64{
		"Nr1": 0.30000000000000004,
		"Nr2": 0.27,
		"Nr3": 0.12,
	}, network.FlowAtNodes())
}

func TestLoadFromFileJSON(t *testing.T) {
	content := `{
  "name": "oil line",
  "viscosity": 1e-4,
  "density": 870,
  "start": {"name": "S", "type": "outlet", "added_flow": 0.001},
  "objects": [
    {"pipe": {"material": "steel", "dimension": 0.2, "gradient": 0.01}},
    {"node": {"name": "A", "type": "inlet", "added_flow": 0.002}}
  ]
}`
	network, err := LoadFromFile(writeFile(t, "line.json", content))
	require.NoError(t, err)

	assert.Equal(t, "custom", network.Pipes()[0].State.Fluid().Name)
	assert.Equal(t, 1e-4, network.Pipes()[0].State.Fluid().KinematicViscosity)
	assert.InDelta(t, 0.003, network.FlowAtStartNode(), 1e-15)
}

func TestGradientPipeMayCarryLength(t *testing.T) {
	content := "fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: concrete, dimension: 0.2, gradient: 0.01, length: 35}\n"

	network, err := LoadFromFile(writeFile(t, "net.yaml", content))
	require.NoError(t, err)

	g := network.Pipes()[0].State.Geometry()
	assert.Equal(t, 0.01, g.Gradient)
	assert.Equal(t, 35.0, g.Length)
}

func TestLoadFromFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "missing start name",
			content: "fluid: water\nstart: {added_flow: 0.1}\n",
			field:   "Start.Name",
		},
		{
			name:    "missing fluid",
			content: "start: {name: S}\n",
			field:   "Fluid",
		},
		{
			name:    "empty object",
			content: "fluid: water\nstart: {name: S}\nobjects:\n  - {}\n",
			field:   "Objects[0].Pipe",
		},
		{
			name:    "pipe and node together",
			content: "fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: concrete, dimension: 0.2, gradient: 0.01}\n    node: {name: A}\n",
			field:   "Objects[0].Pipe",
		},
		{
			name:    "pipe without slope",
			content: "fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: concrete, dimension: 0.2}\n",
			field:   "Objects[0].Pipe.Gradient",
		},
		{
			name:    "levels without z2",
			content: "fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: concrete, dimension: 0.2, z1: 1, length: 10}\n",
			field:   "Objects[0].Pipe.Z2",
		},
		{
			name:    "levels without length",
			content: "fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: concrete, dimension: 0.2, z1: 1, z2: 0.8}\n",
			field:   "Objects[0].Pipe.Gradient",
		},
		{
			name:    "negative dimension",
			content: "fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: concrete, dimension: -0.2, gradient: 0.01}\n",
			field:   "Objects[0].Pipe.Dimension",
		},
		{
			name:    "unknown node type",
			content: "fluid: water\nstart: {name: S, type: valve}\n",
			field:   "Start.Type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeFile(t, "net.yaml", tt.content))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoadFromFileUnknownCatalogEntries(t *testing.T) {
	_, err := LoadFromFile(writeFile(t, "net.yaml", "fluid: mercury\nstart: {name: S}\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fluid", verr.Field)

	_, err = LoadFromFile(writeFile(t, "net.yaml",
		"fluid: water\nstart: {name: S}\nobjects:\n  - pipe: {material: granite, dimension: 0.2, gradient: 0.01}\n"))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "objects[0].pipe", verr.Field)
}

func TestLoadFromFileUnsupportedExtension(t *testing.T) {
	_, err := LoadFromFile(writeFile(t, "net.toml", "name = 'x'"))
	assert.ErrorContains(t, err, "unsupported network file extension")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWarnsOnDuplicateNodes(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	content := "fluid: water\nstart: {name: S}\nobjects:\n  - node: {name: A}\n  - node: {name: A}\n"

	_, err := LoadFromFile(writeFile(t, "dup.yaml", content), WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterField(zap.String("node", "A")).Len())
}
