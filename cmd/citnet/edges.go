package main

import (
	"fmt"

	"citnet/internal/network"
	"citnet/internal/storage"

	"github.com/spf13/cobra"
)

var (
	judgementEdgesOnly bool
	dropSelfCitations  bool
)

func init() {
	edgesCmd.Flags().BoolVar(&judgementEdgesOnly, "judgement-edges-only", false,
		"persist only edges whose source is a judgement-sample node")
	edgesCmd.Flags().BoolVar(&dropSelfCitations, "drop-self-citations", false,
		"drop citation edges between works sharing a first author (fuzzy match)")
	rootCmd.AddCommand(edgesCmd)
}

var edgesCmd = &cobra.Command{
	Use:   "edges <citnet|cocit|bibcp>",
	Short: "Regenerate the edge list from the sampled nodes",
	Long: `Regenerate the network's edge list.

Modes:
  citnet  direct citation edges, citing work -> cited work, weight 0
  cocit   co-citation edges: weight = number of common citing works
  bibcp   bibliographic coupling edges: weight = number of shared references`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"citnet", "cocit", "bibcp"},
	RunE:      runEdges,
}

func runEdges(cmd *cobra.Command, args []string) error {
	var opts []network.Option
	if dropSelfCitations {
		opts = append(opts, network.WithSelfCitationFilter())
	}

	net, db, err := openNetwork(opts...)
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	switch args[0] {
	case "citnet":
		progressf("generating regular citation edges")
		net.ClearEdges()
		net.MakeRegularEdges()
	case "cocit", "bibcp":
		progressf("generating %s similarity edges", args[0])
		if err := net.MakeSemsimEdges(network.Measure(args[0])); err != nil {
			db.Close()
			fail(ExitConfigError, "%v", err)
		}
	default:
		db.Close()
		fail(ExitConfigError, "unknown edge mode %q", args[0])
	}

	if err := saveAndClose(net, db, storage.SaveOptions{JudgementEdgesOnly: judgementEdgesOnly}); err != nil {
		fail(ExitError, "%v", err)
	}
	fmt.Printf("network holds %d edges\n", len(net.Edges()))
	return nil
}
