package main

import (
	"fmt"

	"citnet/internal/config"

	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(setIntervalCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the stored API key and snowball defaults",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the ADS API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetKey,
}

func runSetKey(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	cfg.ADSAPIKey = args[0]
	if err := cfg.Save(); err != nil {
		fail(ExitError, "%v", err)
	}
	fmt.Println("API key has been set")
	return nil
}

var setIntervalCmd = &cobra.Command{
	Use:   "set-interval <YYYY-YYYY>",
	Short: "Store the default year interval for snowball sampling",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetInterval,
}

func runSetInterval(cmd *cobra.Command, args []string) error {
	startYear, endYear, err := parseInterval(args[0])
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	cfg.SnowballStart = startYear
	cfg.SnowballEnd = endYear
	if err := cfg.Save(); err != nil {
		fail(ExitError, "%v", err)
	}
	fmt.Printf("default snowball interval set to %s\n", args[0])
	return nil
}
