package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/catalog"
	"github.com/alexiusacademia/goflow/internal/logger"
)

var pipeFullCmd = &cobra.Command{
	Use:   "full",
	Short: "Full-pipe velocity, flow rate and friction",
	Long: `Calculate the velocity and flow rate of a pipe flowing full under
gravity using the explicit Colebrook-White equation (g = 9.82 m/s²),
then the Reynolds number, flow regime and Darcy friction factor.

Examples:
  # 225 mm concrete sewer at 1:100 carrying water
  goflow pipe full --material concrete --dimension 0.225 --gradient 0.01

  # Gradient from invert levels
  goflow pipe full -m plastic -d 0.3 --z1 10.5 --z2 10.3 --length 50`,
	Run: runPipeFull,
}

func init() {
	pipeCmd.AddCommand(pipeFullCmd)
}

func runPipeFull(cmd *cobra.Command, args []string) {
	state, err := newPipeState(readPipeFlags(cmd), appConfig.Defaults)
	if err != nil {
		logger.Logger.Errorw("pipe setup failed", "error", err)
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     FULL-PIPE FLOW - COLEBROOK-WHITE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printPipeInput(state)

	area, _ := state.Geometry().FullArea()

	fmt.Println("FULL-PIPE FLOW:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Flow area (A):\t%s m²\n", num(area))
	fmt.Fprintf(w, "  Velocity (v_full):\t%s m/s\n", num(state.FullVelocity()))
	fmt.Fprintf(w, "  Flow rate (q_full):\t%s m³/s\n", num(state.FullFlowRate()))
	fmt.Fprintf(w, "  Flow rate (q_full):\t%.1f l/s\n", state.FullFlowRate()*1000)
	w.Flush()
	fmt.Println()

	printFriction(state)
	fmt.Println()
	fmt.Printf("  g = %.2f m/s²\n", catalog.GravitationalAcceleration)
	fmt.Println()
}
