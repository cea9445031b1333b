package value

import "errors"

var (
	ErrUnsupportedClone = errors.New("unsupported clone")
	ErrIncomparableType = errors.New("incomparable type")
)
