package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/openvqa/vizprep/dataset"
	"github.com/openvqa/vizprep/extract"
	"github.com/openvqa/vizprep/fetch"
	"github.com/openvqa/vizprep/manifest"
	"github.com/openvqa/vizprep/sysdeps"
)

func setup(cfg *SetupConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Setup.Parse(cc, args); err != nil {
		return err
	}
	if cfg.DownloadOnly && cfg.TruncateOnly {
		return fmt.Errorf("%w: cannot use -download-only with -truncate-only", cli.ErrUsage)
	}
	ctx := context.Background()
	theLog.Info("data directory", "path", cfg.DataDir)
	theLog.Info("truncation ratio", "ratio", cfg.Ratio)
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("could not create %q: %w", cfg.DataDir, err)
	}

	if cfg.TruncateOnly {
		err := dataset.Restore(cfg.backupDir(), cfg.vizwizDir(), theLog)
		if errors.Is(err, dataset.ErrNoBackup) {
			theLog.Warn("backup not found, truncating existing files", "error", err)
		} else if err != nil {
			return err
		}
		return truncateDatasets(cc, cfg.MainConfig, dataset.ModeInPlace, false, "")
	}

	if !cfg.SkipInstall {
		if err := sysdeps.Install(ctx, nil, theLog); err != nil {
			return err
		}
	}
	if err := fetchAndRestore(ctx, cfg.MainConfig, cfg.Manifest); err != nil {
		return err
	}
	if cfg.DownloadOnly {
		theLog.Info("download-only: skipping truncation")
		return nil
	}
	return truncateDatasets(cc, cfg.MainConfig, dataset.ModeInPlace, false, "")
}

// fetchAndRestore downloads the archives, extracts them into the backup
// root when it does not exist yet, and mirrors the backup into the
// working directory.
func fetchAndRestore(ctx context.Context, cfg *MainConfig, manifestFile string) error {
	m := manifest.Default()
	if manifestFile != "" {
		var err error
		if m, err = manifest.Load(manifestFile); err != nil {
			return err
		}
	}
	client := &fetch.Client{Dir: cfg.vizwizDir(), Log: theLog}
	archives, err := client.Fetch(ctx, m.Archives)
	if err != nil {
		theLog.Warn("some downloads failed", "error", err)
	}
	if len(archives) == 0 {
		return fmt.Errorf("no archives downloaded")
	}
	backup := cfg.backupDir()
	if entries, err := os.ReadDir(backup); err == nil && len(entries) > 0 {
		theLog.Info("backup already exists, skipping extraction", "path", backup)
	} else if err := extract.Extract(ctx, archives, backup, nil, theLog); err != nil {
		return err
	}
	return dataset.Restore(backup, cfg.vizwizDir(), theLog)
}
