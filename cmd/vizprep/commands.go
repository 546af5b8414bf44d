package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{
		DataDir:  "/data",
		Ratio:    0.1,
		Datasets: []string{"val", "train", "test"},
	}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "ratio",
			Description: "fraction of records to keep, in (0,1] (default 0.1)",
			Type:        cli.NamedFuncOpt(cfg.ratioOpt, "(ratio)"),
		},
		&cli.Opt{
			Name:        "datasets",
			Description: "comma separated dataset names (default val,train,test)",
			Type:        cli.NamedFuncOpt(cfg.datasetsOpt, "(names)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "vizprep").
		WithSynopsis("vizprep [opts] command [opts]").
		WithDescription("vizprep downloads the VizWiz dataset and truncates it to a fraction of its size.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return vizMain(cfg, cc, args)
		}).
		WithSubs(
			SetupCommand(cfg),
			FetchCommand(cfg),
			RestoreCommand(cfg),
			TruncateCommand(cfg))
}

func SetupCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetupConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Setup, "setup").
		WithAliases("s", "run").
		WithSynopsis("setup [-download-only|-truncate-only] [-skip-install] [-manifest file]").
		WithDescription("install tools, download and extract the dataset, then truncate it in place").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return setup(cfg, cc, args)
		})
}

func FetchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FetchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fetch, "fetch").
		WithAliases("f").
		WithSynopsis("fetch [-manifest file]").
		WithDescription("download and extract the dataset archives without truncating").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fetchRun(cfg, cc, args)
		})
}

func RestoreCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RestoreConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Restore, "restore").
		WithAliases("r").
		WithSynopsis("restore").
		WithDescription("mirror the pristine backup into the working directory").
		WithRun(func(cc *cli.Context, args []string) error {
			return restoreRun(cfg, cc, args)
		})
}

func TruncateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TruncateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Truncate, "truncate").
		WithAliases("t", "tr").
		WithSynopsis("truncate [-copy-out] [-force] [-no-restore] [-suffix s]").
		WithDescription("truncate the datasets to the configured ratio").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return truncateRun(cfg, cc, args)
		})
}
