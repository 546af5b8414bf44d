package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Truncate cuts a dataset down to the first floor(N*ratio) records of its
// index and reconciles the image directory to exactly the images those
// records reference. The cut is a prefix, so repeated runs over the same
// input produce identical output.
//
// Missing inputs surface as ErrMissingIndex or ErrMissingImages so a
// caller looping over datasets can skip and continue. A malformed index
// is an ordinary error, fatal to this dataset only.
//
// There is no atomicity across the index write and the image
// reconciliation: an in-place run that fails midway can leave the index
// updated with deletions partially applied. Restore recovers from that.
func Truncate(cfg Config) (*Result, error) {
	if cfg.Ratio <= 0 || cfg.Ratio > 1 {
		return nil, fmt.Errorf("ratio %v not in (0, 1]", cfg.Ratio)
	}
	log := cfg.logger()

	indexPath := filepath.Join(cfg.Dir, cfg.Name+".json")
	imageDir := filepath.Join(cfg.Dir, cfg.Name)

	if _, err := os.Stat(indexPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingIndex, indexPath)
		}
		return nil, fmt.Errorf("could not stat %q: %w", indexPath, err)
	}
	if fi, err := os.Stat(imageDir); err != nil || !fi.IsDir() {
		if err == nil || os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingImages, imageDir)
		}
		return nil, fmt.Errorf("could not stat %q: %w", imageDir, err)
	}

	if cfg.Mode == ModeInPlace && cfg.Backup != "" && !cfg.Force {
		if err := checkPristine(indexPath, filepath.Join(cfg.Backup, cfg.Name+".json"), log); err != nil {
			return nil, err
		}
	}

	d, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", indexPath, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(d, &records); err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", indexPath, err)
	}

	target := int(float64(len(records)) * cfg.Ratio)
	retained := records[:target]
	if retained == nil {
		retained = []json.RawMessage{}
	}
	log.Info("truncating dataset",
		"dataset", cfg.Name, "mode", cfg.Mode,
		"records", len(records), "target", target)

	outIndex, outDir := indexPath, imageDir
	if cfg.Mode == ModeCopyOut {
		suffix := cfg.OutSuffix
		if suffix == "" {
			suffix = DefaultOutSuffix
		}
		outIndex = filepath.Join(cfg.Dir, cfg.Name+suffix+".json")
		outDir = filepath.Join(cfg.Dir, cfg.Name+suffix)
	}

	if err := writeIndex(outIndex, retained); err != nil {
		return nil, err
	}

	keep := retainedImages(retained)
	res := &Result{
		Name:          cfg.Name,
		Mode:          cfg.Mode,
		OriginalCount: len(records),
		TargetCount:   target,
		Kept:          len(keep),
		Missing:       missingImages(imageDir, keep),
	}
	switch cfg.Mode {
	case ModeInPlace:
		res.Removed, err = prune(imageDir, keep)
	case ModeCopyOut:
		res.Copied, err = copyRetained(imageDir, outDir, keep)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// checkPristine compares the working index against its backup. A missing
// backup index downgrades to a warning, matching the behavior of runs
// that never created a backup.
func checkPristine(indexPath, backupPath string, log *slog.Logger) error {
	backup, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("backup index not found, skipping pristine check", "path", backupPath)
			return nil
		}
		return fmt.Errorf("could not read %q: %w", backupPath, err)
	}
	working, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", indexPath, err)
	}
	if !bytes.Equal(working, backup) {
		return fmt.Errorf("%w: %s differs from %s; restore first or use force",
			ErrNotPristine, indexPath, backupPath)
	}
	return nil
}

// writeIndex persists the retained records with two-space indentation.
// HTML escaping is off so non-ASCII text passes through unescaped.
func writeIndex(path string, records []json.RawMessage) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("could not encode index: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

// prune deletes every regular file in dir whose name is not in keep.
func prune(dir string, keep map[string]bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("could not list %q: %w", dir, err)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || keep[e.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("could not remove %q: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// copyRetained recreates dst and copies into it every kept file present
// in src. Referenced files absent from src were already recorded as
// missing and are skipped here.
func copyRetained(src, dst string, keep map[string]bool) (int, error) {
	if err := os.RemoveAll(dst); err != nil {
		return 0, fmt.Errorf("could not clear %q: %w", dst, err)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, fmt.Errorf("could not create %q: %w", dst, err)
	}
	names := make([]string, 0, len(keep))
	for name := range keep {
		names = append(names, name)
	}
	sort.Strings(names)
	copied := 0
	for _, name := range names {
		srcPath := filepath.Join(src, name)
		if _, err := os.Stat(srcPath); err != nil {
			continue
		}
		if err := copyFile(srcPath, filepath.Join(dst, name)); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// missingImages returns the kept names with no file in dir, sorted.
func missingImages(dir string, keep map[string]bool) []string {
	var missing []string
	for name := range keep {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", src, err)
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("could not stat %q: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return fmt.Errorf("could not create %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("could not copy %q: %w", src, err)
	}
	return out.Close()
}
