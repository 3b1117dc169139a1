// Package main provides the citnet CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// dbPath is the SQLite database file shared by all data commands.
var dbPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citnet",
	Short: "Citation network sampler for the Astrophysical Data System",
	Long: `citnet builds citation networks from the Astrophysical Data System (ADS)
in a format compatible with Gephi, a popular network visualization tool.

Networks grow by judgement sampling (a curated list of bibcodes) and
snowball sampling (following citation and reference links within a year
interval). Edges can express direct citation, co-citation or
bibliographic coupling, and nodes are labeled with Infomap communities.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	_ = godotenv.Load()

	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "SQLite database file (created if missing)")
}

// progressf reports per-identifier progress on stderr.
func progressf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
