package patch

import (
	"encoding/json"
	"strings"

	"github.com/sinclairzx81/statebox/value"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineOp classifies a line of a text diff.
type LineOp int

const (
	LineEqual LineOp = iota
	LineDelete
	LineInsert
)

func (o LineOp) Prefix() string {
	switch o {
	case LineDelete:
		return "- "
	case LineInsert:
		return "+ "
	default:
		return "  "
	}
}

type Line struct {
	Op   LineOp
	Text string
}

// LineDiff compares the indented JSON renderings of from and to line by
// line.
func LineDiff(from, to *value.Value) ([]Line, error) {
	a, err := render(from)
	if err != nil {
		return nil, err
	}
	b, err := render(to)
	if err != nil {
		return nil, err
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var res []Line
	for i := range diffs {
		d := &diffs[i]
		op := LineEqual
		switch d.Type {
		case diffpatch.DiffDelete:
			op = LineDelete
		case diffpatch.DiffInsert:
			op = LineInsert
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return res, nil
}

// TextDiff renders LineDiff with "- ", "+ " and "  " prefixes. Equal
// values give "".
func TextDiff(from, to *value.Value) (string, error) {
	if value.Equal(from, to) {
		return "", nil
	}
	lines, err := LineDiff(from, to)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Op.Prefix())
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func render(v *value.Value) (string, error) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(d) + "\n", nil
}
