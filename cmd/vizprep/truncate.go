package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/openvqa/vizprep/dataset"
)

func truncateRun(cfg *TruncateConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Truncate.Parse(cc, args); err != nil {
		return err
	}
	mode := dataset.ModeInPlace
	if cfg.CopyOut {
		mode = dataset.ModeCopyOut
	}
	if mode == dataset.ModeInPlace && !cfg.NoRestore {
		err := dataset.Restore(cfg.backupDir(), cfg.vizwizDir(), theLog)
		if errors.Is(err, dataset.ErrNoBackup) {
			theLog.Warn("backup not found, truncating existing files", "error", err)
		} else if err != nil {
			return err
		}
	}
	return truncateDatasets(cc, cfg.MainConfig, mode, cfg.Force, cfg.Suffix)
}

// truncateDatasets runs the truncator over every requested dataset.
// Missing inputs skip the dataset with a warning; any other failure is
// fatal to that dataset only.
func truncateDatasets(cc *cli.Context, cfg *MainConfig, mode dataset.Mode, force bool, suffix string) error {
	dir := cfg.vizwizDir()
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("dataset directory %q not found; run setup first", dir)
	}
	failed := 0
	for _, name := range cfg.Datasets {
		res, err := dataset.Truncate(dataset.Config{
			Dir:       dir,
			Name:      name,
			Ratio:     cfg.Ratio,
			Mode:      mode,
			Backup:    cfg.backupDir(),
			Force:     force,
			OutSuffix: suffix,
			Log:       theLog,
		})
		switch {
		case errors.Is(err, dataset.ErrMissingIndex),
			errors.Is(err, dataset.ErrMissingImages):
			theLog.Warn("skipping dataset", "dataset", name, "reason", err)
			continue
		case err != nil:
			theLog.Error("dataset failed", "dataset", name, "error", err)
			failed++
			continue
		}
		printResult(cc.Out, res)
	}
	if failed > 0 && failed == len(cfg.Datasets) {
		return fmt.Errorf("all %d datasets failed", failed)
	}
	return nil
}
