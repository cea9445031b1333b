package box

import (
	"slices"

	"github.com/sinclairzx81/statebox/value"
)

// Observer is a multicast endpoint attached to one box. Data callbacks
// receive the value of the observed box whenever a change is published at
// or below it, sync callbacks receive the descriptor of that change and end
// callbacks receive the final value when the box is disposed.
type Observer struct {
	dataFns []func(*value.Value)
	syncFns []func(Sync)
	endFns  []func(*value.Value)
}

// Observe attaches a new observer to b.
func (b *Box) Observe() *Observer {
	o := &Observer{}
	b.observers = append(b.observers, o)
	return o
}

func (o *Observer) Data(fn func(*value.Value)) *Observer {
	o.dataFns = append(o.dataFns, fn)
	return o
}

func (o *Observer) Sync(fn func(Sync)) *Observer {
	o.syncFns = append(o.syncFns, fn)
	return o
}

func (o *Observer) End(fn func(*value.Value)) *Observer {
	o.endFns = append(o.endFns, fn)
	return o
}

// Dispose drops every callback. The observer stays attached to its box but
// receives nothing further.
func (o *Observer) Dispose() {
	o.dataFns = nil
	o.syncFns = nil
	o.endFns = nil
}

func (o *Observer) sendNext(data *value.Value, s Sync) {
	for _, fn := range slices.Clone(o.dataFns) {
		fn(value.Clone(data))
	}
	for _, fn := range slices.Clone(o.syncFns) {
		fn(s.Clone())
	}
}

func (o *Observer) sendEnd(data *value.Value) {
	for _, fn := range slices.Clone(o.endFns) {
		fn(value.Clone(data))
	}
}
