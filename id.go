package siggn

import (
	"strconv"
	"sync/atomic"
)

// idAllocator hands out subscriber identities that are unique per bus.
type idAllocator struct {
	prefix string
	next   atomic.Uint64
}

// allocate returns explicit unchanged when it is non-empty. Collisions with
// generated identities are the caller's responsibility.
func (a *idAllocator) allocate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return a.prefix + strconv.FormatUint(a.next.Add(1), 36)
}
