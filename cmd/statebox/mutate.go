package main

import (
	"fmt"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/patch"
	"github.com/sinclairzx81/statebox/value"

	"github.com/scott-cotton/cli"
)

// mutation applies one operation to root. arg is nil for operations which
// take no value.
type mutation struct {
	name   string
	hasArg bool
	apply  func(root *box.Box, path string, arg *value.Value) error
}

var (
	setMutation = mutation{name: "set", hasArg: true, apply: func(root *box.Box, path string, arg *value.Value) error {
		b, err := root.With(path)
		if err != nil {
			return err
		}
		return b.Set(arg)
	}}
	mixMutation = mutation{name: "mix", hasArg: true, apply: func(root *box.Box, path string, arg *value.Value) error {
		b, err := root.With(path)
		if err != nil {
			return err
		}
		return b.Mix(arg)
	}}
	defaultMutation = mutation{name: "default", hasArg: true, apply: func(root *box.Box, path string, arg *value.Value) error {
		b, err := root.With(path)
		if err != nil {
			return err
		}
		return b.Default(arg)
	}}
	dropMutation = mutation{name: "drop", apply: func(root *box.Box, path string, _ *value.Value) error {
		return root.Drop(path)
	}}
)

func mutate(cfg *MutateConfig, m mutation, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		cfg.Command.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	n := 1
	if m.hasArg {
		n = 2
	}
	if len(args) < n {
		return fmt.Errorf("%w: %s requires %d arguments", cli.ErrUsage, m.name, n)
	}
	file, err := fileArg(args, n)
	if err != nil {
		return err
	}
	var arg *value.Value
	if m.hasArg {
		arg, err = parseArg(args[1])
		if err != nil {
			return err
		}
	}
	root, err := cfg.readBox(cc, file)
	if err != nil {
		return err
	}
	var rec *patch.Recorder
	if cfg.Trace {
		rec = patch.Record(root)
	}
	if err := m.apply(root, args[0], arg); err != nil {
		return fmt.Errorf("error applying %s at %q: %w", m.name, args[0], err)
	}
	if rec != nil {
		newTracer(cfg.MainConfig, cc).syncs(rec.Syncs())
	}
	return cfg.writeDoc(cc.Out, root.Get())
}
