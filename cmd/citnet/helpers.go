package main

import (
	"fmt"
	"os"
	"strings"

	"citnet/internal/ads"
	"citnet/internal/config"
	"citnet/internal/network"
	"citnet/internal/storage"
)

// openNetwork opens the database and loads the stored network into a
// fresh model backed by an ADS client.
func openNetwork(extra ...network.Option) (*network.Network, *storage.DB, error) {
	if dbPath == "" {
		return nil, nil, fmt.Errorf("no database file given (use --database)")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	client := ads.NewClient(ads.WithAPIKey(cfg.ADSAPIKey))
	opts := append([]network.Option{network.WithLogf(progressf)}, extra...)
	net := network.New(client, opts...)

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := db.LoadNetwork(net); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("loading network: %w", err)
	}
	return net, db, nil
}

// saveAndClose persists the network and closes the database.
func saveAndClose(net *network.Network, db *storage.DB, opts storage.SaveOptions) error {
	defer db.Close()
	if err := db.SaveNetwork(net, opts); err != nil {
		return fmt.Errorf("saving network: %w", err)
	}
	return nil
}

// fail prints an error to stderr and exits with the given code.
func fail(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// parseInterval splits a "YYYY-YYYY" year interval.
func parseInterval(s string) (startYear, endYear string, err error) {
	startYear, endYear, ok := strings.Cut(s, "-")
	if !ok || len(startYear) != 4 || len(endYear) != 4 {
		return "", "", fmt.Errorf("invalid year interval %q (expected YYYY-YYYY)", s)
	}
	return startYear, endYear, nil
}
