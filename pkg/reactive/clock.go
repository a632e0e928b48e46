package reactive

import "sync/atomic"

// QueryClock issues strictly increasing sequence tokens.
// The zero value is ready to use; the first token is 1.
type QueryClock struct {
	n atomic.Uint64
}

func (c *QueryClock) Next() uint64 {
	return c.n.Add(1)
}

// Current returns the last issued token, or 0 if none was issued.
func (c *QueryClock) Current() uint64 {
	return c.n.Load()
}
