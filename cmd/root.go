package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goflow/internal/conf"
	"github.com/alexiusacademia/goflow/internal/logger"
	"github.com/alexiusacademia/goflow/internal/version"
)

var (
	cfgFile  string
	logLevel string

	// appConfig is loaded before any subcommand runs
	appConfig conf.Config
)

var rootCmd = &cobra.Command{
	Use:   "goflow",
	Short: "Gravity Pipe Flow Calculator",
	Long: `goflow - Go Gravity Pipe Flow Calculator

A CLI tool for steady-state hydraulic calculations on gravity-driven
circular pipes and simple chains of pipes and nodes.

This tool helps engineers perform:
  - Full-pipe velocity and capacity (Colebrook-White)
  - Reynolds number, flow regime and Darcy friction factor
  - Part-full depth and flow (Bretting)
  - Accumulated flow along a drainage chain

All quantities are SI units (m, m/s, m³/s).`,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goflow v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Gravity Pipe Flow Calculator                         ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for hydraulic calculations on gravity pipes.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Full-pipe velocity and flow rate (Colebrook-White)")
		fmt.Println("    • Reynolds number, flow regime and friction factor")
		fmt.Println("    • Part-full pipe depth and flow (Bretting)")
		fmt.Println("    • Accumulated flow along pipe networks from YAML/JSON files")
		fmt.Println()
		fmt.Println("  Use 'goflow --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initRuntime loads the configuration and starts the logger. The
// --log-level flag wins over the configured level.
func initRuntime(cmd *cobra.Command, args []string) error {
	if err := conf.InitConf(cfgFile); err != nil {
		return err
	}
	c, err := conf.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	err = logger.InitLogger("goflow", logger.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	})
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	appConfig = c
	logger.Logger.Debugw("configuration loaded", "file", conf.Conf.ConfigFileUsed(), "command", cmd.CommandPath())
	return nil
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./goflow.yaml or $HOME/.goflow/goflow.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}
