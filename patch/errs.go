package patch

import "errors"

var (
	ErrRootReplace = errors.New("cannot replace document root")
	ErrBadSync     = errors.New("bad sync descriptor")
)
