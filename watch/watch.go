// Package watch filters box notifications through expr-lang predicates.
//
// A predicate sees the observed value as `value`. When that value is an
// object its members are also visible by name. Two helper functions are
// available: getpath(p) returns the value at a slash-delimited path below
// the observed value, and kindof(p) returns the name of that value's kind.
// Predicates used with WhenSync also see the descriptor path as `path`.
package watch

import (
	"errors"
	"fmt"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/debug"
	"github.com/sinclairzx81/statebox/keypath"
	"github.com/sinclairzx81/statebox/value"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrNotBool = errors.New("predicate did not produce a boolean")

type Predicate struct {
	src string
	prg *vm.Program
}

// Compile compiles src as a boolean expression.
func Compile(src string) (*Predicate, error) {
	prg, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Predicate{src: src, prg: prg}, nil
}

func MustCompile(src string) *Predicate {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Predicate) String() string {
	return p.src
}

// Match evaluates the predicate against v.
func (p *Predicate) Match(v *value.Value) (bool, error) {
	return p.run(env(v))
}

// MatchSync evaluates the predicate against the data of s, with the path
// of s bound as `path`.
func (p *Predicate) MatchSync(s box.Sync) (bool, error) {
	e := env(s.Data)
	e["path"] = s.Path
	return p.run(e)
}

func (p *Predicate) run(e map[string]any) (bool, error) {
	out, err := expr.Run(p.prg, e)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.src, err)
	}
	res, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q gave %T", ErrNotBool, p.src, out)
	}
	return res, nil
}

func env(v *value.Value) map[string]any {
	res := map[string]any{}
	if value.KindOf(v) == value.ObjectKind {
		for i, k := range v.Keys {
			res[k] = v.Fields[i].Interface()
		}
	}
	res["value"] = v.Interface()
	res["getpath"] = func(path string) any {
		return lookup(v, path).Interface()
	}
	res["kindof"] = func(path string) string {
		return value.KindOf(lookup(v, path)).String()
	}
	return res
}

func lookup(v *value.Value, path string) *value.Value {
	segs, err := keypath.Parse(path)
	if err != nil {
		return nil
	}
	cur := v
	for _, seg := range segs {
		switch value.KindOf(cur) {
		case value.ArrayKind:
			if seg.Kind != keypath.Index {
				return nil
			}
			cur = cur.Index(seg.Index)
		case value.ObjectKind:
			cur = cur.Get(seg.String())
		default:
			return nil
		}
	}
	return cur
}

// When adds a data callback to o which calls fn only for values matching
// p. Evaluation errors count as no match and are logged when watch
// debugging is on.
func When(o *box.Observer, p *Predicate, fn func(*value.Value)) *box.Observer {
	return o.Data(func(v *value.Value) {
		ok, err := p.Match(v)
		if err != nil {
			logErr(p, err)
			return
		}
		if ok {
			fn(v)
		}
	})
}

// WhenSync is When for sync callbacks.
func WhenSync(o *box.Observer, p *Predicate, fn func(box.Sync)) *box.Observer {
	return o.Sync(func(s box.Sync) {
		ok, err := p.MatchSync(s)
		if err != nil {
			logErr(p, err)
			return
		}
		if ok {
			fn(s)
		}
	})
}

func logErr(p *Predicate, err error) {
	if !debug.Watch() {
		return
	}
	debug.Log().Debug().Err(err).Str("expr", p.src).Msg("watch")
}
