// SPDX-License-Identifier: MIT

package staging

// DefaultCapacity is the staging capacity used when callers have no better
// estimate.
const DefaultCapacity = 1024

// Option customizes a Buffer or Pair.
type Option func(*options)

type options struct {
	onFlush func(n int)
}

// WithFlushHook registers fn to run after every successful flush with the
// number of values it moved (0 for an empty final flush).
// Panics on nil.
func WithFlushHook(fn func(n int)) Option {
	if fn == nil {
		panic("staging: WithFlushHook(nil)")
	}
	return func(o *options) { o.onFlush = fn }
}

func resolve(opts []Option) options {
	o := options{onFlush: func(int) {}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
