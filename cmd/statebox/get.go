package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	file, err := fileArg(args, 1)
	if err != nil {
		return err
	}
	b, err := cfg.readBox(cc, file)
	if err != nil {
		return err
	}
	res, ok := b.Find(args[0])
	if !ok {
		// nothing there, nothing to print
		return nil
	}
	return cfg.writeDoc(cc.Out, res.Get())
}

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: keys requires one argument, a path", cli.ErrUsage)
	}
	file, err := fileArg(args, 1)
	if err != nil {
		return err
	}
	b, err := cfg.readBox(cc, file)
	if err != nil {
		return err
	}
	res, ok := b.Find(args[0])
	if !ok {
		return nil
	}
	for _, k := range res.Keys() {
		fmt.Fprintln(cc.Out, k)
	}
	return nil
}
