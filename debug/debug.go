package debug

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type debug struct {
	Publish bool
	Dispose bool
	Sync    bool
	Watch   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Publish = boolEnv("STATEBOX_DEBUG_PUBLISH")
	d.Dispose = boolEnv("STATEBOX_DEBUG_DISPOSE")
	d.Sync = boolEnv("STATEBOX_DEBUG_SYNC")
	d.Watch = boolEnv("STATEBOX_DEBUG_WATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Publish() bool {
	return d.Publish
}
func Dispose() bool {
	return d.Dispose
}
func Sync() bool {
	return d.Sync
}
func Watch() bool {
	return d.Watch
}

// Enable turns on the named toggles ("publish", "dispose", "sync", "watch"
// or "all").
func Enable(names ...string) error {
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "publish":
			d.Publish = true
		case "dispose":
			d.Dispose = true
		case "sync":
			d.Sync = true
		case "watch":
			d.Watch = true
		case "all":
			d.Publish, d.Dispose, d.Sync, d.Watch = true, true, true, true
		case "":
		default:
			return fmt.Errorf("unknown debug toggle %q", name)
		}
	}
	return nil
}

// Reset turns every toggle off.
func Reset() {
	*d = debug{}
}
