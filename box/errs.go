package box

import "errors"

var (
	ErrInvalidTraversal = errors.New("invalid traversal")
	ErrDisposed         = errors.New("box disposed")
	ErrReentrancy       = errors.New("publish depth exceeded")
)
