package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("goflow v%s\n", version.Version)
		fmt.Println("Gravity Pipe Flow Calculator")
		fmt.Printf("Built %s from commit %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
