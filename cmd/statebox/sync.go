package main

import (
	"fmt"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/codec"
	"github.com/sinclairzx81/statebox/patch"
	"github.com/sinclairzx81/statebox/value"
	"github.com/sinclairzx81/statebox/watch"

	"github.com/scott-cotton/cli"
)

// readSyncs reads a list of {path, data} descriptors from file.
func (cfg *MainConfig) readSyncs(cc *cli.Context, file string) ([]box.Sync, error) {
	v, err := cfg.readDoc(cc, file)
	if err != nil {
		return nil, err
	}
	syncs, err := patch.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("error reading descriptors from %s: %w", displayName(file), err)
	}
	return syncs, nil
}

func checkStdin(descFile, docFile string) error {
	if (descFile == "-" || descFile == "") && (docFile == "-" || docFile == "") {
		return fmt.Errorf("%w: descriptors and document cannot both come from stdin", cli.ErrUsage)
	}
	return nil
}

func syncDoc(cfg *SyncConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Sync.Parse(cc, args)
	if err != nil {
		cfg.Sync.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: sync requires a descriptor file", cli.ErrUsage)
	}
	file, err := fileArg(args, 1)
	if err != nil {
		return err
	}
	root, err := syncSetup(cfg.MainConfig, cc, args[0], file)
	if err != nil {
		return err
	}
	syncs, err := cfg.readSyncs(cc, args[0])
	if err != nil {
		return err
	}
	var rec *patch.Recorder
	if cfg.Trace {
		rec = patch.Record(root)
	}
	if err := patch.Replay(root, syncs...); err != nil {
		return err
	}
	if rec != nil {
		newTracer(cfg.MainConfig, cc).syncs(rec.Syncs())
	}
	return cfg.writeDoc(cc.Out, root.Get())
}

// syncSetup reads the document to sync onto. Without a document file the
// tree starts undefined.
func syncSetup(cfg *MainConfig, cc *cli.Context, descFile, docFile string) (*box.Box, error) {
	if docFile == "" {
		return box.New(cfg.boxOpts()...), nil
	}
	if err := checkStdin(descFile, docFile); err != nil {
		return nil, err
	}
	return cfg.readBox(cc, docFile)
}

func watchDoc(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: watch requires an expression and a descriptor file", cli.ErrUsage)
	}
	file, err := fileArg(args, 2)
	if err != nil {
		return err
	}
	pred, err := watch.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	root, err := syncSetup(cfg.MainConfig, cc, args[1], file)
	if err != nil {
		return err
	}
	syncs, err := cfg.readSyncs(cc, args[1])
	if err != nil {
		return err
	}
	target, err := root.With(cfg.At)
	if err != nil {
		return fmt.Errorf("error moving to %q: %w", cfg.At, err)
	}
	n := 0
	var werr error
	emit := func(v *value.Value) {
		if werr != nil {
			return
		}
		if n > 0 && cfg.outFormat() == codec.YAMLFormat {
			if _, werr = cc.Out.Write([]byte("---\n")); werr != nil {
				return
			}
		}
		n++
		werr = cfg.writeDoc(cc.Out, v)
	}
	if cfg.Sync {
		watch.WhenSync(target.Observe(), pred, func(s box.Sync) {
			emit(patch.ToValue([]box.Sync{s}).Index(0))
		})
	} else {
		watch.When(target.Observe(), pred, emit)
	}
	if err := patch.Replay(root, syncs...); err != nil {
		return err
	}
	return werr
}
