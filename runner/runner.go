// Package runner invokes external tools as subprocesses.
package runner

import (
	"context"
	"os"
	"os/exec"
)

// Func runs an external command and waits for it to finish. The fetch,
// extract and sysdeps packages take a Func so tests can substitute the
// subprocess with a fake.
type Func func(ctx context.Context, name string, args ...string) error

// Passthrough runs the command with its output wired to the process
// stdout and stderr.
func Passthrough(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
