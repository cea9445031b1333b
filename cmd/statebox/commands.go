package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "statebox").
		WithSynopsis("statebox [opts] command [opts]").
		WithDescription("statebox applies observable state tree operations to documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return stateboxMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			KeysCommand(cfg),
			SetCommand(cfg),
			MixCommand(cfg),
			DefaultCommand(cfg),
			DropCommand(cfg),
			DiffCommand(cfg),
			SyncCommand(cfg),
			WatchCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [file]").
		WithDescription("print the value at a path of a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k").
		WithSynopsis("keys <path> [file]").
		WithDescription("list the keys of the object or array at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func mutateCommand(mainCfg *MainConfig, name, synopsis, desc string, m mutation, aliases ...string) *cli.Command {
	cfg := &MutateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, name).
		WithAliases(aliases...).
		WithSynopsis(synopsis).
		WithDescription(desc).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mutate(cfg, m, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	return mutateCommand(mainCfg, "set",
		"set [-trace] <path> <value> [file]",
		"set the value at a path and print the document",
		setMutation, "s")
}

func MixCommand(mainCfg *MainConfig) *cli.Command {
	return mutateCommand(mainCfg, "mix",
		"mix [-trace] <path> <value> [file]",
		"merge a value onto the value at a path and print the document",
		mixMutation, "m")
}

func DefaultCommand(mainCfg *MainConfig) *cli.Command {
	return mutateCommand(mainCfg, "default",
		"default [-trace] <path> <value> [file]",
		"set the value at a path if it is undefined and print the document",
		defaultMutation, "ini")
}

func DropCommand(mainCfg *MainConfig) *cli.Command {
	return mutateCommand(mainCfg, "drop",
		"drop [-trace] <path> [file]",
		"remove the value at a path and print the document",
		dropMutation, "rm")
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] [-text|-jsonpatch] <from> <to>").
		WithDescription("print the sync descriptors turning one document into another").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func SyncCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SyncConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Sync, "sync").
		WithSynopsis("sync [-trace] <descriptors> [file]").
		WithDescription("replay sync descriptors onto a document and print it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return syncDoc(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [-at path] [-sync] <expr> <descriptors> [file]").
		WithDescription("replay sync descriptors and print each notification matching an expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watchDoc(cfg, cc, args)
		})
}
