// Package dataset implements prefix truncation of JSON-indexed image
// datasets and restoration of working copies from a pristine backup.
//
// A dataset named "val" under directory dir consists of an index file
// dir/val.json holding a JSON array of records, and an image directory
// dir/val. Each record carries an "image" field naming a file in the
// image directory; all other record fields are opaque and preserved
// byte-for-byte.
package dataset

import (
	"encoding/json"
	"errors"
	"log/slog"
)

var (
	// ErrMissingIndex reports an absent dataset index file. Callers
	// processing several datasets log it and move on.
	ErrMissingIndex = errors.New("dataset index not found")

	// ErrMissingImages reports an absent image directory.
	ErrMissingImages = errors.New("image directory not found")

	// ErrNoBackup reports a missing or empty backup root.
	ErrNoBackup = errors.New("backup not found")

	// ErrNotPristine reports that the working index no longer matches the
	// backup, meaning a prior in-place truncation already consumed it.
	ErrNotPristine = errors.New("working copy is not pristine")
)

// Mode selects how Truncate reconciles the image directory.
type Mode int

const (
	// ModeInPlace overwrites the index and deletes images that fall
	// outside the retained prefix. Destructive; see Config.Backup.
	ModeInPlace Mode = iota

	// ModeCopyOut writes the reduced index and the retained images to
	// sibling paths, leaving the source untouched.
	ModeCopyOut
)

func (m Mode) String() string {
	switch m {
	case ModeInPlace:
		return "in-place"
	case ModeCopyOut:
		return "copy-out"
	}
	return "unknown"
}

// DefaultOutSuffix names copy-out outputs: val.json becomes
// val_truncated.json and val/ becomes val_truncated/.
const DefaultOutSuffix = "_truncated"

// Config parameterizes a single Truncate call.
type Config struct {
	// Dir is the dataset directory holding {Name}.json and {Name}/.
	Dir string

	// Name is the dataset name, e.g. "val".
	Name string

	// Ratio is the fraction of records to keep, in (0, 1].
	Ratio float64

	// Mode selects in-place or copy-out reconciliation.
	Mode Mode

	// Backup is the backup root holding the pristine copy of the
	// dataset. In-place truncation compares the working index against
	// {Backup}/{Name}.json and refuses to run when they differ, so
	// destructive runs cannot compound. Empty disables the check.
	Backup string

	// Force skips the pristine check.
	Force bool

	// OutSuffix overrides DefaultOutSuffix for copy-out mode.
	OutSuffix string

	// Log receives progress; nil means slog.Default().
	Log *slog.Logger
}

func (cfg *Config) logger() *slog.Logger {
	if cfg.Log != nil {
		return cfg.Log
	}
	return slog.Default()
}

// Result reports what a Truncate call did.
type Result struct {
	Name          string
	Mode          Mode
	OriginalCount int      // records in the input index
	TargetCount   int      // records retained
	Kept          int      // distinct image names referenced by retained records
	Removed       int      // files deleted (in-place)
	Copied        int      // files copied (copy-out)
	Missing       []string // referenced images absent from the source directory
}

type record struct {
	Image string `json:"image"`
}

// retainedImages collects the non-empty image names referenced by the
// retained records. Records that are not objects are skipped.
func retainedImages(records []json.RawMessage) map[string]bool {
	keep := make(map[string]bool, len(records))
	for _, raw := range records {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.Image == "" {
			continue
		}
		keep[rec.Image] = true
	}
	return keep
}
