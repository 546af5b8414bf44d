package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func fetchRun(cfg *FetchConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Fetch.Parse(cc, args); err != nil {
		return err
	}
	return fetchAndRestore(context.Background(), cfg.MainConfig, cfg.Manifest)
}
