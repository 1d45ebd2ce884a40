package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/diagram"
	"github.com/alexiusacademia/goflow/internal/logger"
	"github.com/alexiusacademia/goflow/internal/network"
)

var (
	networkFile  string
	networkLoads bool
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Accumulated flow along a pipe network",
	Long: `Load a linear pipe network from a YAML or JSON file and report the
accumulated flow at every node, summing the added flow of all nodes
upstream of it. The start node carries the total.

Network file (YAML):
  name: Street A
  fluid: water
  start: {name: Nr1, type: breakpoint, added_flow: 0.03}
  objects:
    - pipe: {name: P1, material: concrete, dimension: 0.225, gradient: 0.01}
    - node: {name: Nr2, type: manhole, added_flow: 0.15}

Examples:
  goflow network --file street.yaml

  # Also check every pipe against its accumulated load
  goflow network --file street.yaml --loads`,
	Run: runNetwork,
}

func init() {
	rootCmd.AddCommand(networkCmd)

	networkCmd.Flags().StringVarP(&networkFile, "file", "i", "", "Network definition file (.yaml, .yml, .json) [required]")
	networkCmd.Flags().BoolVar(&networkLoads, "loads", false, "Check each pipe against the flow it carries")
	networkCmd.MarkFlagRequired("file")
}

func runNetwork(cmd *cobra.Command, args []string) {
	net, err := network.LoadFromFile(networkFile, network.WithLogger(logger.Logger))
	if err != nil {
		logger.Logger.Errorw("network load failed", "file", networkFile, "error", err)
		fmt.Printf("Error: %v\n", err)
		return
	}
	logger.Logger.Infow("network loaded", "file", networkFile,
		"nodes", len(net.Nodes()), "pipes", len(net.Pipes()))

	flows := net.FlowAtNodes()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	if net.Name != "" {
		fmt.Printf("     PIPE NETWORK - %s\n", net.Name)
	} else {
		fmt.Println("     PIPE NETWORK")
	}
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("ACCUMULATED FLOW:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Node\tType\tAdded (m³/s)\tAccumulated (m³/s)\t")
	fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t\n", net.Start.Name, net.Start.Type, num(net.Start.AddedFlow), num(net.FlowAtStartNode()))
	for _, node := range net.Nodes() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t\n", node.Name, node.Type, num(node.AddedFlow), num(flows[node.Name]))
	}
	w.Flush()
	fmt.Println()

	summary := []string{
		fmt.Sprintf("Flow at %s = %s m³/s", net.Start.Name, num(net.FlowAtStartNode())),
	}

	if networkLoads {
		overloaded := printPipeLoads(net)
		summary = append(summary, fmt.Sprintf("Pipes over capacity: %d of %d", overloaded, len(net.Pipes())))
	}

	fmt.Print(diagram.DrawSummaryBox("RESULT", summary))
	fmt.Println()
}

// printPipeLoads applies the accumulated flows to the pipes and prints the
// PIPE LOADS block. It returns the number of overloaded pipes.
func printPipeLoads(net *network.PipeNetwork) int {
	loads := net.PipeLoads()
	overloaded := network.Apply(loads)

	over := make(map[*network.Pipe]bool, len(overloaded))
	for _, load := range overloaded {
		over[load.Pipe] = true
	}

	fmt.Println("PIPE LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Pipe\tDrains\tLoad (m³/s)\tCapacity (m³/s)\tq/q_full\tDepth (m)\t")
	for _, load := range loads {
		drains := load.Drains
		if drains == "" {
			drains = "-"
		}
		status := "✓"
		depth := "-"
		if over[load.Pipe] {
			status = "⚠ over capacity"
		} else if load.Pipe.State != nil {
			if d, err := load.Pipe.State.Depth(); err == nil {
				depth = num(d)
			}
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%.3f %s\t%s\t\n",
			load.Pipe.Name, drains, num(load.FlowRate), num(load.Capacity()), load.Utilisation(), status, depth)
	}
	w.Flush()
	fmt.Println()

	return len(overloaded)
}
