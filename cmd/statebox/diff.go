package main

import (
	"encoding/json"
	"fmt"

	"github.com/sinclairzx81/statebox/patch"
	"github.com/sinclairzx81/statebox/value"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments", cli.ErrUsage)
	}
	if cfg.Text && cfg.JSONPatch {
		return fmt.Errorf("%w: -text and -jsonpatch are exclusive", cli.ErrUsage)
	}
	from, err := cfg.readDoc(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.readDoc(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	if cfg.Text {
		if value.Equal(from, to) {
			return nil
		}
		lines, err := patch.LineDiff(from, to)
		if err != nil {
			return err
		}
		newTracer(cfg.MainConfig, cc).lines(lines)
		return nil
	}
	syncs := patch.Diff(from, to)
	if !cfg.JSONPatch {
		return cfg.writeDoc(cc.Out, patch.ToValue(syncs))
	}
	p, err := patch.ToJSONPatch(from, syncs)
	if err != nil {
		return fmt.Errorf("error converting to json patch: %w", err)
	}
	d, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ops, err := value.ParseJSON(d)
	if err != nil {
		return err
	}
	return cfg.writeDoc(cc.Out, ops)
}
