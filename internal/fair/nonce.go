package fair

import "sync/atomic"

// NonceCounter hands out monotonically increasing nonces for rounds whose
// caller supplies none. It is the engine's only shared mutable state.
type NonceCounter struct {
	n atomic.Uint64
}

// Next returns the next nonce. Safe for concurrent use.
func (c *NonceCounter) Next() uint64 {
	return c.n.Add(1)
}
