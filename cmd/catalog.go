package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List pipe materials and fluids",
	Long: `List the pipe materials with their absolute roughness and the fluids
with their kinematic viscosity and density. The names are the values
accepted by --material and --fluid and by network files.`,
	Run: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println("MATERIALS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Name\tRoughness k (mm)\t")
	for _, m := range catalog.Materials() {
		marker := ""
		if m.String() == appConfig.Defaults.Material {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %s%s\t%.3f\t\n", m, marker, m.Roughness()*1000)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("FLUIDS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Name\tViscosity ν (m²/s)\tDensity ρ (kg/m³)\t")
	for _, f := range catalog.Fluids() {
		p := f.Properties()
		marker := ""
		if f.String() == appConfig.Defaults.Fluid {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %s%s\t%.3e\t%.1f\t\n", f, marker, p.KinematicViscosity, p.Density)
	}
	w.Flush()
	fmt.Println()
}
