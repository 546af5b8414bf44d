package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	DataDir string `cli:"name=data-dir aliases=dataset-dir desc='path to the data directory'"`

	Ratio    float64
	Datasets []string

	Main *cli.Command
}

func (cfg *MainConfig) ratioOpt(_ *cli.Context, a string) (any, error) {
	r, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ratio %q", cli.ErrUsage, a)
	}
	if r <= 0 || r > 1 {
		return nil, fmt.Errorf("%w: ratio %v not in (0, 1]", cli.ErrUsage, r)
	}
	cfg.Ratio = r
	return r, nil
}

func (cfg *MainConfig) datasetsOpt(_ *cli.Context, a string) (any, error) {
	names := strings.FieldsFunc(a, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: empty dataset list", cli.ErrUsage)
	}
	cfg.Datasets = names
	return names, nil
}

// vizwizDir is the working root: the mutable tree truncation operates on.
func (cfg *MainConfig) vizwizDir() string {
	return filepath.Join(cfg.DataDir, "VizWiz")
}

// backupDir is the pristine mirror created once by extraction and never
// mutated afterwards.
func (cfg *MainConfig) backupDir() string {
	return filepath.Join(cfg.vizwizDir(), "original")
}

type SetupConfig struct {
	*MainConfig

	DownloadOnly bool   `cli:"name=download-only desc='only download and extract, skip truncation'"`
	TruncateOnly bool   `cli:"name=truncate-only desc='only truncate an existing dataset, skip download'"`
	SkipInstall  bool   `cli:"name=skip-install desc='skip system dependency installation'"`
	Manifest     string `cli:"name=manifest desc='archive manifest file (YAML), defaults to the canonical VizWiz set'"`

	Setup *cli.Command
}

type FetchConfig struct {
	*MainConfig

	Manifest string `cli:"name=manifest desc='archive manifest file (YAML), defaults to the canonical VizWiz set'"`

	Fetch *cli.Command
}

type RestoreConfig struct {
	*MainConfig

	Restore *cli.Command
}

type TruncateConfig struct {
	*MainConfig

	CopyOut   bool   `cli:"name=copy-out desc='write results to sibling paths instead of overwriting the source'"`
	Force     bool   `cli:"name=force desc='truncate even when the working copy is not pristine'"`
	NoRestore bool   `cli:"name=no-restore desc='do not restore the working copy from backup first'"`
	Suffix    string `cli:"name=suffix desc='output name suffix for copy-out mode (default _truncated)'"`

	Truncate *cli.Command
}
