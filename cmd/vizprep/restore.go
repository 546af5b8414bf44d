package main

import (
	"errors"

	"github.com/scott-cotton/cli"

	"github.com/openvqa/vizprep/dataset"
)

func restoreRun(cfg *RestoreConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Restore.Parse(cc, args); err != nil {
		return err
	}
	err := dataset.Restore(cfg.backupDir(), cfg.vizwizDir(), theLog)
	if errors.Is(err, dataset.ErrNoBackup) {
		theLog.Warn("nothing to restore", "error", err)
		return nil
	}
	return err
}
