package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"citnet/internal/config"
	"citnet/internal/network"
	"citnet/internal/storage"

	"github.com/spf13/cobra"
)

// bibcodeLen is the fixed length of an ADS bibcode.
const bibcodeLen = 19

var (
	snowballScope    string
	snowballInterval string
)

func init() {
	sampleCmd.AddCommand(coresetCmd)
	sampleCmd.AddCommand(snowballCmd)
	rootCmd.AddCommand(sampleCmd)

	snowballCmd.Flags().StringVarP(&snowballScope, "scope", "s", "", "link lists to follow: cit, ref or cit+ref")
	snowballCmd.Flags().StringVarP(&snowballInterval, "interval", "i", "", "year interval YYYY-YYYY (default from config)")
	snowballCmd.MarkFlagRequired("scope")
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Grow the network by sampling publication records",
}

var coresetCmd = &cobra.Command{
	Use:   "coreset <bibcode-file>",
	Short: "Seed the network from a curated bibcode list (judgement sampling)",
	Long: `Seed the network from a curated core set of publications.

The file must contain one ADS bibcode per line. Every bibcode is added
as a judgement-sample node; no year filter applies.`,
	Args: cobra.ExactArgs(1),
	RunE: runCoreset,
}

func runCoreset(cmd *cobra.Command, args []string) error {
	bibcodes, err := readBibcodeFile(args[0])
	if err != nil {
		fail(ExitError, "%v", err)
	}

	net, db, err := openNetwork()
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	progressf("starting core set (judgement) sampling of %d bibcodes", len(bibcodes))
	if err := net.SampleJudgement(cmd.Context(), bibcodes); err != nil {
		db.Close()
		fail(ExitError, "%v", err)
	}

	if err := saveAndClose(net, db, storage.SaveOptions{}); err != nil {
		fail(ExitError, "%v", err)
	}
	fmt.Printf("network holds %d nodes\n", len(net.Nodes()))
	return nil
}

var snowballCmd = &cobra.Command{
	Use:   "snowball",
	Short: "Expand the network by following citation/reference links",
	Long: `Expand the network by snowball sampling.

Every current member's citation and/or reference lists are scanned for
bibcodes whose year prefix falls inside the interval; matches not yet
in the network are fetched and added. Fetch failures for single
bibcodes are logged and skipped.`,
	RunE: runSnowball,
}

func runSnowball(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	startYear, endYear := cfg.Interval()
	if snowballInterval != "" {
		startYear, endYear, err = parseInterval(snowballInterval)
		if err != nil {
			fail(ExitConfigError, "%v", err)
		}
	}

	net, db, err := openNetwork()
	if err != nil {
		fail(ExitConfigError, "%v", err)
	}

	progressf("starting snowball sampling (%s) over [%s, %s]", snowballScope, startYear, endYear)
	if err := net.SampleSnowball(cmd.Context(), network.Scope(snowballScope), startYear, endYear); err != nil {
		db.Close()
		fail(ExitConfigError, "%v", err)
	}

	if err := saveAndClose(net, db, storage.SaveOptions{}); err != nil {
		fail(ExitError, "%v", err)
	}
	fmt.Printf("network holds %d nodes\n", len(net.Nodes()))
	return nil
}

// readBibcodeFile reads one bibcode per line, trimming to the fixed
// bibcode length and skipping blank lines.
func readBibcodeFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibcode list: %w", err)
	}
	defer f.Close()

	var bibcodes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) > bibcodeLen {
			line = line[:bibcodeLen]
		}
		bibcodes = append(bibcodes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bibcode list: %w", err)
	}
	return bibcodes, nil
}
