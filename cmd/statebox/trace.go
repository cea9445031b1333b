package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/patch"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

type tracer struct {
	w io.Writer

	comment func(string, ...any) string
	path    func(string, ...any) string
	data    func(string, ...any) string
	insert  func(string, ...any) string
	delete  func(string, ...any) string
}

func newTracer(cfg *MainConfig, cc *cli.Context) *tracer {
	t := &tracer{
		w:       cc.Out,
		comment: fmt.Sprintf,
		path:    fmt.Sprintf,
		data:    fmt.Sprintf,
		insert:  fmt.Sprintf,
		delete:  fmt.Sprintf,
	}
	if !cfg.useColor(cc) {
		return t
	}
	mk := func(c *color.Color) func(string, ...any) string {
		c.EnableColor()
		return c.SprintfFunc()
	}
	t.comment = mk(color.New(color.FgBlue))
	t.path = mk(color.RGB(196, 96, 16))
	t.data = mk(color.RGB(8, 196, 16))
	t.insert = mk(color.New(color.FgGreen))
	t.delete = mk(color.New(color.FgRed))
	return t
}

// syncs prints descriptors as comment lines, which leaves YAML output
// parseable.
func (t *tracer) syncs(syncs []box.Sync) {
	for i := range syncs {
		d, err := json.Marshal(syncs[i].Data)
		if err != nil {
			d = []byte(err.Error())
		}
		fmt.Fprintf(t.w, "%s %s %s\n", t.comment("# sync"), t.path("%q", syncs[i].Path), t.data("%s", d))
	}
}

func (t *tracer) lines(lines []patch.Line) {
	for _, l := range lines {
		text := l.Op.Prefix() + l.Text
		switch l.Op {
		case patch.LineInsert:
			text = t.insert("%s", text)
		case patch.LineDelete:
			text = t.delete("%s", text)
		}
		fmt.Fprintln(t.w, text)
	}
}
