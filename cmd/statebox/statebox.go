package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/codec"
	"github.com/sinclairzx81/statebox/value"

	"github.com/scott-cotton/cli"
)

func stateboxMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readDoc decodes the document in file, or stdin when file is "" or "-".
func (cfg *MainConfig) readDoc(cc *cli.Context, file string) (*value.Value, error) {
	var r io.Reader
	if file == "" || file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	v, err := codec.Read(cfg.inFormat(file), r)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", displayName(file), err)
	}
	return v, nil
}

// readBox reads a document into a new tree.
func (cfg *MainConfig) readBox(cc *cli.Context, file string) (*box.Box, error) {
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return nil, err
	}
	return box.From(doc, cfg.boxOpts()...)
}

// parseArg decodes a value given on the command line. Anything YAML
// accepts is accepted, so bare words are strings.
func parseArg(a string) (*value.Value, error) {
	v, err := codec.Decode(codec.YAMLFormat, []byte(a))
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse %q: %w", cli.ErrUsage, a, err)
	}
	return v, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, v *value.Value) error {
	if err := codec.Write(cfg.outFormat(), w, v); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func displayName(file string) string {
	if file == "" {
		return "-"
	}
	return file
}

// fileArg returns the optional trailing file argument.
func fileArg(args []string, n int) (string, error) {
	switch len(args) {
	case n:
		return "", nil
	case n + 1:
		return args[n], nil
	default:
		return "", fmt.Errorf("%w: expected %d or %d arguments, got %d", cli.ErrUsage, n, n+1, len(args))
	}
}
