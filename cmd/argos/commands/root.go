package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "argos",
	Short: "Argos - equity research and selection pipeline",
	Long: `Argos Unified CLI

Daily research pipeline: screen a universe, score each symbol on
fundamentals, technicals, sentiment and risk, select the top
candidates and persist the decision with its reasoning.

Usage:
  go run ./cmd/argos [command]

Examples:
  go run ./cmd/argos research run --strategy growth
  go run ./cmd/argos research history --strategy growth
  go run ./cmd/argos api
  go run ./cmd/argos scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
