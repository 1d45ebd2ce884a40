package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/catalog"
	"github.com/alexiusacademia/goflow/internal/conf"
	"github.com/alexiusacademia/goflow/internal/hydraulics"
	"github.com/alexiusacademia/goflow/internal/logger"
)

// pipeInputs collects the pipe and fluid flags shared by the pipe subcommands
type pipeInputs struct {
	Material  string
	Fluid     string
	Viscosity float64 // m²/s, overrides Fluid when set
	Density   float64 // kg/m³

	Dimension float64 // m
	Gradient  float64 // m/m
	Z1, Z2    float64 // m
	Length    float64 // m

	// Which slope inputs were given on the command line
	GradientSet bool
	LevelsSet   bool
}

var pipeIn pipeInputs

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Single pipe calculations",
	Long: `Hydraulic calculations for a single gravity-driven circular pipe.

Subcommands:
  full     - Full-pipe velocity, flow rate, Reynolds number and friction
  partial  - Part-full pipe state from a depth or a flow rate
  fill     - Part-full flow from the fill angle of the wetted arc

The slope is given either directly with --gradient or from invert levels
with --z1, --z2 and --length. Material and fluid default to the values in
the config file.`,
}

func init() {
	rootCmd.AddCommand(pipeCmd)

	flags := pipeCmd.PersistentFlags()

	// Pipe flags
	flags.StringVarP(&pipeIn.Material, "material", "m", "", "Pipe material (see 'goflow catalog')")
	flags.Float64VarP(&pipeIn.Dimension, "dimension", "d", 0, "Internal diameter D (m) [required]")
	flags.Float64VarP(&pipeIn.Gradient, "gradient", "s", 0, "Pipe gradient S (m/m)")
	flags.Float64Var(&pipeIn.Z1, "z1", 0, "Upstream invert level (m)")
	flags.Float64Var(&pipeIn.Z2, "z2", 0, "Downstream invert level (m)")
	flags.Float64VarP(&pipeIn.Length, "length", "l", 0, "Pipe length (m)")

	// Fluid flags
	flags.StringVarP(&pipeIn.Fluid, "fluid", "f", "", "Fluid carried (see 'goflow catalog')")
	flags.Float64Var(&pipeIn.Viscosity, "viscosity", 0, "Custom kinematic viscosity ν (m²/s)")
	flags.Float64Var(&pipeIn.Density, "density", 0, "Custom density ρ (kg/m³), used with --viscosity")

	pipeCmd.MarkPersistentFlagRequired("dimension")
}

// readPipeFlags records which slope inputs the user gave
func readPipeFlags(cmd *cobra.Command) pipeInputs {
	in := pipeIn
	in.GradientSet = cmd.Flags().Changed("gradient")
	in.LevelsSet = cmd.Flags().Changed("length") || cmd.Flags().Changed("z1") || cmd.Flags().Changed("z2")
	return in
}

// resolveFluid returns custom properties when a viscosity is given,
// otherwise the named catalogue fluid.
func (in pipeInputs) resolveFluid(defaults conf.DefaultsConfig) (catalog.FluidProperties, error) {
	if in.Viscosity != 0 || in.Density != 0 {
		fluid := catalog.CustomFluid(in.Viscosity, in.Density)
		if err := fluid.Validate(); err != nil {
			return catalog.FluidProperties{}, err
		}
		return fluid, nil
	}

	name := in.Fluid
	if name == "" {
		name = defaults.Fluid
	}
	f, err := catalog.ParseFluid(name)
	if err != nil {
		return catalog.FluidProperties{}, err
	}
	return f.Properties(), nil
}

// resolveGeometry builds the pipe geometry from the gradient or levels
func (in pipeInputs) resolveGeometry(defaults conf.DefaultsConfig) (hydraulics.Geometry, error) {
	name := in.Material
	if name == "" {
		name = defaults.Material
	}
	material, err := catalog.ParseMaterial(name)
	if err != nil {
		return hydraulics.Geometry{}, err
	}

	switch {
	case in.GradientSet && in.LevelsSet:
		return hydraulics.Geometry{}, errors.New("give either --gradient or --z1/--z2/--length, not both")
	case in.LevelsSet:
		return hydraulics.NewGeometryFromLevels(material, in.Dimension, in.Z1, in.Z2, in.Length)
	case in.GradientSet:
		return hydraulics.NewGeometry(material, in.Dimension, in.Gradient)
	default:
		return hydraulics.Geometry{}, errors.New("pipe slope missing: give --gradient or --z1/--z2/--length")
	}
}

// newPipeState resolves the inputs into a pipe state
func newPipeState(in pipeInputs, defaults conf.DefaultsConfig) (*hydraulics.PipeState, error) {
	g, err := in.resolveGeometry(defaults)
	if err != nil {
		return nil, err
	}
	fluid, err := in.resolveFluid(defaults)
	if err != nil {
		return nil, err
	}
	return hydraulics.NewPipeState(g, fluid, hydraulics.WithLogger(logger.Logger))
}

// printPipeInput prints the INPUT DATA block shared by the pipe reports
func printPipeInput(state *hydraulics.PipeState) {
	g := state.Geometry()
	fluid := state.Fluid()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Material:\t%s (k = %.3f mm)\n", g.Material, g.Roughness()*1000)
	fmt.Fprintf(w, "  Diameter (D):\t%s m\n", num(g.Dimension))
	fmt.Fprintf(w, "  Gradient (S):\t%s m/m\n", num(g.Gradient))
	if g.Length > 0 {
		fmt.Fprintf(w, "  Length (L):\t%s m\n", num(g.Length))
	}
	fmt.Fprintf(w, "  Fluid:\t%s\n", fluid.Name)
	fmt.Fprintf(w, "  Kinematic viscosity (ν):\t%.3e m²/s\n", fluid.KinematicViscosity)
	fmt.Fprintf(w, "  Density (ρ):\t%.1f kg/m³\n", fluid.Density)
	w.Flush()
	fmt.Println()
}

// printFriction prints the FLOW REGIME block for the state's current velocity
func printFriction(state *hydraulics.PipeState) {
	fmt.Println("FLOW REGIME:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	result, err := state.FrictionFactor()
	fmt.Fprintf(w, "  Reynolds number (Re):\t%.0f\n", result.Reynolds)
	fmt.Fprintf(w, "  Regime:\t%s\n", result.Regime)
	switch {
	case errors.Is(err, hydraulics.ErrUndefinedFrictionFactor):
		fmt.Fprintf(w, "  Friction factor (f):\tundefined ⚠ (%v)\n", err)
	case err != nil:
		fmt.Fprintf(w, "  Friction factor (f):\tfailed ⚠ (%v)\n", err)
	default:
		fmt.Fprintf(w, "  Friction factor (f):\t%.6f\n", result.Factor)
		if result.Iterations > 0 {
			fmt.Fprintf(w, "  Newton iterations:\t%d\n", result.Iterations)
		}
	}
}

// num formats a quantity with the configured report precision
func num(v float64) string {
	precision := appConfig.Report.Precision
	if precision <= 0 {
		precision = 4
	}
	return fmt.Sprintf("%.*f", precision, v)
}
