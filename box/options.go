package box

import "github.com/google/uuid"

// DefaultMaxPublishDepth bounds reentrant publishing: an observer that sets
// the box it observes recurses at most this many times before Publish
// returns ErrReentrancy.
const DefaultMaxPublishDepth = 64

// DefaultMaxIndex is the largest array index Into creates. Children are
// stored densely, so reaching a larger index would allocate every slot
// below it.
const DefaultMaxIndex = 1<<20 - 1

type Option func(*options)

type options struct {
	maxPublishDepth int
	maxIndex        int
	newID           func() string
}

func defaultOptions() *options {
	return &options{
		maxPublishDepth: DefaultMaxPublishDepth,
		maxIndex:        DefaultMaxIndex,
		newID:           uuid.NewString,
	}
}

// WithMaxPublishDepth sets the reentrancy bound for a tree. Values below 1
// are ignored.
func WithMaxPublishDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPublishDepth = n
		}
	}
}

// WithMaxIndex sets the largest array index Into creates. Negative values
// are ignored.
func WithMaxIndex(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxIndex = n
		}
	}
}

// WithIDGenerator replaces the uuid based identifier generator.
func WithIDGenerator(f func() string) Option {
	return func(o *options) {
		if f != nil {
			o.newID = f
		}
	}
}

func (b *Box) options() *options {
	if b.opts == nil {
		b.opts = defaultOptions()
	}
	return b.opts
}
