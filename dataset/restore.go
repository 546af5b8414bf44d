package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Restore mirrors every entry of the backup root into the working root,
// replacing same-named entries: directories wholesale, files by content.
// In-place truncation is destructive, so callers restore before each run
// to start from the full dataset. Returns ErrNoBackup when the backup
// root is absent or empty.
func Restore(backup, working string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	entries, err := os.ReadDir(backup)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoBackup, backup)
		}
		return fmt.Errorf("could not list %q: %w", backup, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrNoBackup, backup)
	}
	log.Info("restoring working copy", "from", backup, "to", working, "entries", len(entries))
	if err := os.MkdirAll(working, 0755); err != nil {
		return fmt.Errorf("could not create %q: %w", working, err)
	}
	for _, e := range entries {
		src := filepath.Join(backup, e.Name())
		dst := filepath.Join(working, e.Name())
		if e.IsDir() {
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("could not replace %q: %w", dst, err)
			}
			if err := copyTree(src, dst); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}
