package main

import (
	"fmt"

	"citnet/internal/storage"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(modularityCmd)
}

var modularityCmd = &cobra.Command{
	Use:   "modularity",
	Short: "Assign a community ID to each node via Infomap",
	Long: `Assign each node the zero-based ID of its Infomap module, computed
over the current edge list. Run an edges command first; with no edges
every node lands in community 0.`,
	RunE: runModularity,
}

func runModularity(cmd *cobra.Command, args []string) error {
	net, db, err := openNetwork()
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	progressf("assigning Infomap communities")
	net.AssignModularity()

	if err := saveAndClose(net, db, storage.SaveOptions{}); err != nil {
		fail(ExitError, "%v", err)
	}
	fmt.Println("modularity assigned")
	return nil
}
