package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/goflow/internal/catalog"
	"github.com/alexiusacademia/goflow/internal/hydraulics"
)

// validate is a singleton validator instance
var validate = validator.New()

// File is the on-disk definition of a pipe network (YAML or JSON)
type File struct {
	Name string `json:"name" yaml:"name"`

	// Fluid carried by every pipe, either a catalogue name or explicit properties
	Fluid     string  `json:"fluid,omitempty" yaml:"fluid" validate:"required_without=Viscosity"`
	Viscosity float64 `json:"viscosity,omitempty" yaml:"viscosity" validate:"omitempty,gt=0"`
	Density   float64 `json:"density,omitempty" yaml:"density" validate:"required_with=Viscosity,omitempty,gt=0"`

	Start   NodeSpec     `json:"start" yaml:"start"`
	Objects []ObjectSpec `json:"objects" yaml:"objects" validate:"dive"`
}

// ObjectSpec holds exactly one of a pipe or a node
type ObjectSpec struct {
	Pipe *PipeSpec `json:"pipe,omitempty" yaml:"pipe" validate:"required_without=Node,excluded_with=Node"`
	Node *NodeSpec `json:"node,omitempty" yaml:"node" validate:"required_without=Pipe"`
}

// NodeSpec defines a node
type NodeSpec struct {
	Name               string   `json:"name" yaml:"name" validate:"required,max=64"`
	Type               string   `json:"type,omitempty" yaml:"type" validate:"omitempty,oneof=breakpoint manhole inlet outlet"`
	GroundLevel        *float64 `json:"ground_level,omitempty" yaml:"ground_level"`
	Dimension          *float64 `json:"dimension,omitempty" yaml:"dimension" validate:"omitempty,gt=0"`
	AddedFlow          float64  `json:"added_flow" yaml:"added_flow"`
	HydraulicGradeLine float64  `json:"hydraulic_grade_line,omitempty" yaml:"hydraulic_grade_line"`
}

// PipeSpec defines a pipe by gradient or by invert levels and length
type PipeSpec struct {
	Name      string   `json:"name,omitempty" yaml:"name"`
	Material  string   `json:"material" yaml:"material" validate:"required"`
	Dimension float64  `json:"dimension" yaml:"dimension" validate:"gt=0"`
	Gradient  *float64 `json:"gradient,omitempty" yaml:"gradient" validate:"required_without=Length,omitempty,gte=0"`
	Z1        *float64 `json:"z1,omitempty" yaml:"z1" validate:"required_without=Gradient"`
	Z2        *float64 `json:"z2,omitempty" yaml:"z2" validate:"required_without=Gradient"`
	Length    float64  `json:"length,omitempty" yaml:"length" validate:"required_without=Gradient,omitempty,gt=0"`
}

// ValidationError reports a malformed network definition
type ValidationError struct {
	Field string
	msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.msg
	}
	return e.Field + ": " + e.msg
}

type loadOptions struct {
	log *zap.SugaredLogger
}

// LoadOption configures LoadFromFile and Build
type LoadOption func(*loadOptions)

// WithLogger sets the logger handed to every pipe and used for warnings
func WithLogger(l *zap.SugaredLogger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// LoadFromFile loads a network definition from a .yaml, .yml or .json file
func LoadFromFile(path string, opts ...LoadOption) (*PipeNetwork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported network file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return file.Build(opts...)
}

// Validate checks the definition against its struct tags
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Build validates the definition and assembles the network
func (f *File) Build(opts ...LoadOption) (*PipeNetwork, error) {
	o := loadOptions{log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	fluid, err := f.fluid()
	if err != nil {
		return nil, &ValidationError{Field: "fluid", msg: err.Error()}
	}

	start, err := f.Start.build()
	if err != nil {
		return nil, &ValidationError{Field: "start", msg: err.Error()}
	}

	network := NewPipeNetwork(start)
	network.Name = f.Name

	seen := map[string]bool{start.Name: true}
	for i, spec := range f.Objects {
		field := fmt.Sprintf("objects[%d]", i)

		if spec.Node != nil {
			node, err := spec.Node.build()
			if err != nil {
				return nil, &ValidationError{Field: field + ".node", msg: err.Error()}
			}
			if seen[node.Name] {
				o.log.Warnw("duplicate node name, accumulated flow will be overwritten", "node", node.Name, "index", i)
			}
			seen[node.Name] = true
			network.Append(node)
			continue
		}

		pipe, err := spec.Pipe.build(fluid, o.log)
		if err != nil {
			return nil, &ValidationError{Field: field + ".pipe", msg: err.Error()}
		}
		if pipe.Name == "" {
			pipe.Name = fmt.Sprintf("P%d", len(network.Pipes())+1)
		}
		network.Append(pipe)
	}

	return network, nil
}

func (f *File) fluid() (catalog.FluidProperties, error) {
	var props catalog.FluidProperties
	if f.Viscosity > 0 {
		props = catalog.CustomFluid(f.Viscosity, f.Density)
	} else {
		fl, err := catalog.ParseFluid(f.Fluid)
		if err != nil {
			return props, err
		}
		props = fl.Properties()
	}
	return props, props.Validate()
}

func (s NodeSpec) build() (*Node, error) {
	nodeType := Breakpoint
	if s.Type != "" {
		t, err := ParseNodeType(s.Type)
		if err != nil {
			return nil, err
		}
		nodeType = t
	}
	node := NewNode(s.Name, nodeType, s.AddedFlow)
	node.GroundLevel = s.GroundLevel
	node.Dimension = s.Dimension
	node.HydraulicGradeLine = s.HydraulicGradeLine
	return node, nil
}

func (s PipeSpec) build(fluid catalog.FluidProperties, log *zap.SugaredLogger) (*Pipe, error) {
	material, err := catalog.ParseMaterial(s.Material)
	if err != nil {
		return nil, err
	}

	var geom hydraulics.Geometry
	if s.Gradient != nil {
		geom, err = hydraulics.NewGeometry(material, s.Dimension, *s.Gradient)
		geom.Length = s.Length
	} else {
		geom, err = hydraulics.NewGeometryFromLevels(material, s.Dimension, *s.Z1, *s.Z2, s.Length)
	}
	if err != nil {
		return nil, err
	}

	state, err := hydraulics.NewPipeState(geom, fluid, hydraulics.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &Pipe{Name: s.Name, State: state}, nil
}

// formatValidationError turns the first validator failure into a ValidationError
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "File.")
		param := e.Param()

		switch e.Tag() {
		case "required":
			return &ValidationError{Field: field, msg: "field is required"}
		case "required_without":
			return &ValidationError{Field: field, msg: fmt.Sprintf("field is required when %s is not set", param)}
		case "required_with":
			return &ValidationError{Field: field, msg: fmt.Sprintf("field is required together with %s", param)}
		case "excluded_with":
			return &ValidationError{Field: field, msg: fmt.Sprintf("field cannot be combined with %s", param)}
		case "gt":
			return &ValidationError{Field: field, msg: fmt.Sprintf("must be greater than %s", param)}
		case "gte":
			return &ValidationError{Field: field, msg: fmt.Sprintf("must be at least %s", param)}
		case "max":
			return &ValidationError{Field: field, msg: fmt.Sprintf("must not exceed %s characters", param)}
		case "oneof":
			return &ValidationError{Field: field, msg: fmt.Sprintf("must be one of: %s", param)}
		default:
			return &ValidationError{Field: field, msg: fmt.Sprintf("validation failed (%s)", e.Tag())}
		}
	}

	return err
}
