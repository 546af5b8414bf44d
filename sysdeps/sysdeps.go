// Package sysdeps installs the external tools the pipeline shells out to.
package sysdeps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openvqa/vizprep/runner"
)

// Install installs aria2 and unzip with apt. A failure here is fatal to
// the whole run; the caller should stop and ask the user to install the
// tools manually.
func Install(ctx context.Context, run runner.Func, log *slog.Logger) error {
	if run == nil {
		run = runner.Passthrough
	}
	if log == nil {
		log = slog.Default()
	}
	log.Info("installing system dependencies")
	if err := run(ctx, "apt", "update"); err != nil {
		return fmt.Errorf("apt update: %w", err)
	}
	if err := run(ctx, "apt", "install", "-y", "aria2", "unzip"); err != nil {
		return fmt.Errorf("apt install: %w", err)
	}
	log.Info("dependencies installed")
	return nil
}
