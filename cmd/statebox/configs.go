package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/codec"
	"github.com/sinclairzx81/statebox/config"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y     bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	Color bool `cli:"name=color desc='colour traces and diffs'"`

	ConfigFile string `cli:"name=config desc='configuration file (default $STATEBOX_CONFIG)'"`
	Debug      string `cli:"name=debug desc='comma separated debug toggles: publish,dispose,sync,watch,all'"`

	Settings config.Config

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// setup loads the configuration file and lets the flags override it.
func (cfg *MainConfig) setup() error {
	settings, err := config.Load(config.Locate(cfg.ConfigFile))
	if err != nil {
		return err
	}
	switch {
	case cfg.J:
		settings.Format = codec.JSONFormat
	case cfg.Y:
		settings.Format = codec.YAMLFormat
	}
	if cfg.Color {
		settings.Color = config.ColorAlways
	}
	if cfg.Debug != "" {
		settings.Debug = append(settings.Debug, strings.Split(cfg.Debug, ",")...)
	}
	if err := settings.Apply(); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Settings = settings
	return nil
}

// inFormat is the format file is read in. Without -j or -y it follows the
// file's extension; YAML also reads JSON.
func (cfg *MainConfig) inFormat(file string) codec.Format {
	switch {
	case cfg.J:
		return codec.JSONFormat
	case cfg.Y:
		return codec.YAMLFormat
	}
	return codec.FormatOf(file)
}

func (cfg *MainConfig) outFormat() codec.Format {
	return cfg.Settings.Format
}

func (cfg *MainConfig) boxOpts() []box.Option {
	return cfg.Settings.BoxOptions()
}

func (cfg *MainConfig) useColor(cc *cli.Context) bool {
	f, _ := cc.Out.(*os.File)
	return cfg.Settings.UseColor(f)
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Keys *cli.Command
}

type MutateConfig struct {
	*MainConfig
	Trace bool `cli:"name=trace desc='print each published sync descriptor'"`

	Command *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse   bool `cli:"name=r desc='reverse the diff'"`
	Text      bool `cli:"name=text desc='print a line diff'"`
	JSONPatch bool `cli:"name=jsonpatch desc='print RFC 6902 operations'"`

	Diff *cli.Command
}

type SyncConfig struct {
	*MainConfig
	Trace bool `cli:"name=trace desc='print each published sync descriptor'"`

	Sync *cli.Command
}

type WatchConfig struct {
	*MainConfig
	At   string `cli:"name=at desc='path of the box to watch (default root)'"`
	Sync bool   `cli:"name=sync desc='match sync descriptors instead of values'"`

	Watch *cli.Command
}
