// Package extract unpacks downloaded archives into the backup root.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/openvqa/vizprep/runner"
)

// AnnotationsDir is the nested folder some archives unpack their index
// files into; Extract flattens it into the backup root.
const AnnotationsDir = "Annotations"

// Extract unzips each archive into the backup root and flattens the
// annotations folder. A failing archive is logged and skipped; the
// archive files themselves are kept for reuse.
func Extract(ctx context.Context, archives []string, backup string, run runner.Func, log *slog.Logger) error {
	if run == nil {
		run = runner.Passthrough
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(backup, 0755); err != nil {
		return fmt.Errorf("could not create %q: %w", backup, err)
	}
	for _, archive := range archives {
		if !strings.EqualFold(filepath.Ext(archive), ".zip") {
			continue
		}
		log.Info("extracting", "archive", filepath.Base(archive))
		if err := run(ctx, "unzip", "-o", archive, "-d", backup); err != nil {
			log.Error("extract failed", "archive", filepath.Base(archive), "error", err)
			continue
		}
	}
	return flattenAnnotations(backup, log)
}

// flattenAnnotations moves {backup}/Annotations/*.json up into the
// backup root and removes the folder once emptied, so every dataset
// index sits next to its image directory.
func flattenAnnotations(backup string, log *slog.Logger) error {
	dir := filepath.Join(backup, AnnotationsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not list %q: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		src := filepath.Join(dir, e.Name())
		dst := filepath.Join(backup, e.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("could not move %q: %w", src, err)
		}
		log.Info("moved annotation index", "file", e.Name())
	}
	rest, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not list %q: %w", dir, err)
	}
	if len(rest) == 0 {
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("could not remove %q: %w", dir, err)
		}
	}
	return nil
}
