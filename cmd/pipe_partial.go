package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/diagram"
	"github.com/alexiusacademia/goflow/internal/hydraulics"
	"github.com/alexiusacademia/goflow/internal/logger"
	"github.com/alexiusacademia/goflow/internal/units"
)

var (
	partialDepth   float64
	partialFlow    float64
	partialDiagram bool
	partialOutput  string
	partialCurves  string
)

var pipePartialCmd = &cobra.Command{
	Use:   "partial",
	Short: "Part-full pipe state from a depth or a flow rate",
	Long: `Solve a part-full pipe with Bretting's equations. Give either the flow
depth or the flow rate; the other is derived from the full-pipe capacity.

Examples:
  # Depth for 36 l/s in a 225 mm concrete pipe
  goflow pipe partial -m concrete -d 0.225 -s 0.01 --flow 0.036

  # Flow at 150 mm depth with a section diagram
  goflow pipe partial -m concrete -d 0.225 -s 0.01 --depth 0.15 --diagram

  # Export the section and the part-full curves
  goflow pipe partial -d 0.225 -s 0.01 --flow 0.036 --output out/section.png --curves out/curves.svg`,
	Run: runPipePartial,
}

func init() {
	pipeCmd.AddCommand(pipePartialCmd)

	pipePartialCmd.Flags().Float64Var(&partialDepth, "depth", 0, "Flow depth d (m)")
	pipePartialCmd.Flags().Float64VarP(&partialFlow, "flow", "q", 0, "Flow rate q (m³/s)")
	pipePartialCmd.Flags().BoolVar(&partialDiagram, "diagram", false, "Show ASCII section and fill curve")
	pipePartialCmd.Flags().StringVarP(&partialOutput, "output", "o", "", "Export section diagram to file (png, svg, pdf)")
	pipePartialCmd.Flags().StringVar(&partialCurves, "curves", "", "Export part-full curves to file (png, svg, pdf)")

	pipePartialCmd.MarkFlagsMutuallyExclusive("depth", "flow")
	pipePartialCmd.MarkFlagsOneRequired("depth", "flow")
}

func runPipePartial(cmd *cobra.Command, args []string) {
	state, err := newPipeState(readPipeFlags(cmd), appConfig.Defaults)
	if err != nil {
		logger.Logger.Errorw("pipe setup failed", "error", err)
		fmt.Printf("Error: %v\n", err)
		return
	}

	if cmd.Flags().Changed("depth") {
		err = state.SetDepth(partialDepth)
	} else {
		err = state.SetFlowRate(partialFlow)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		if state.IsOverCapacity() {
			fmt.Printf("  Full-pipe capacity is %s m³/s.\n", num(state.FullFlowRate()))
		}
		return
	}

	fill, err := state.PartialFill()
	if err != nil {
		logger.Logger.Errorw("part-full solution failed", "error", err)
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PART-FULL PIPE FLOW - BRETTING")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printPipeInput(state)

	fmt.Println("FULL-PIPE REFERENCE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Velocity (v_full):\t%s m/s\n", num(state.FullVelocity()))
	fmt.Fprintf(w, "  Flow rate (q_full):\t%s m³/s\n", num(state.FullFlowRate()))
	w.Flush()
	fmt.Println()

	printPartialFill(state.Condition(), fill)
	printFriction(state)
	fmt.Println()

	data := diagram.PipeSectionData{
		Dimension:    state.Geometry().Dimension,
		Depth:        fill.Depth,
		FlowRate:     fill.FlowRate,
		FullFlowRate: state.FullFlowRate(),
		Velocity:     fill.Velocity,
	}

	if partialDiagram {
		fmt.Print(diagram.DrawPipeSection(data))
		fmt.Print(diagram.DrawFillCurve(data))
		fmt.Println()
	}

	fmt.Print(diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("d = %s m (d/D = %.3f)", num(fill.Depth), fill.FillRatio),
		fmt.Sprintf("q = %s m³/s (q/q_full = %.3f)", num(fill.FlowRate), fill.FlowRatio),
		fmt.Sprintf("v = %s m/s", num(fill.Velocity)),
	}))
	fmt.Println()

	exportDiagram(partialOutput, "Section diagram", func(name string) error {
		return diagram.ExportPipeSection(data, name)
	})
	exportDiagram(partialCurves, "Part-full curves", func(name string) error {
		return diagram.ExportFillCurves(data, name)
	})
}

// printPartialFill prints the PART-FULL SECTION block
func printPartialFill(given hydraulics.Condition, fill hydraulics.PartialFill) {
	fmt.Println("PART-FULL SECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Given:\t%s\n", given)
	fmt.Fprintf(w, "  Flow depth (d):\t%s m\n", num(fill.Depth))
	fmt.Fprintf(w, "  Depth ratio (d/D):\t%.4f\n", fill.FillRatio)
	fmt.Fprintf(w, "  Flow rate (q):\t%s m³/s\n", num(fill.FlowRate))
	fmt.Fprintf(w, "  Flow ratio (q/q_full):\t%.4f\n", fill.FlowRatio)
	fmt.Fprintf(w, "  Central angle (θ):\t%.2f°\n", units.Degrees(fill.CentralAngle))
	fmt.Fprintf(w, "  Flow area (A):\t%s m²\n", num(fill.Area))
	fmt.Fprintf(w, "  Wetted perimeter (P):\t%s m\n", num(fill.WettedPerimeter))
	fmt.Fprintf(w, "  Hydraulic radius (R):\t%s m\n", num(fill.HydraulicRadius))
	fmt.Fprintf(w, "  Velocity (v):\t%s m/s\n", num(fill.Velocity))
	w.Flush()
	fmt.Println()
}

// exportDiagram runs export when a filename was given and reports the result
func exportDiagram(filename, what string, export func(string) error) {
	if filename == "" {
		return
	}
	if err := export(filename); err != nil {
		logger.Logger.Errorw("diagram export failed", "file", filename, "error", err)
		fmt.Printf("Error exporting %s: %v\n", what, err)
		return
	}
	fmt.Printf("  %s exported to: %s\n", what, diagram.OutputPath(filename))
}
