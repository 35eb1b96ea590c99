package siggn

import "slices"

// registration binds a listener to the identity that owns it.
type registration[M Message] struct {
	id string
	fn Listener[M]
}

// registry keeps listeners in insertion order, keyed by discriminator, plus
// one sequence of global listeners. It is not safe for concurrent use; the
// owning Bus serializes access.
//
// Sequences are never modified in place once shared: removal builds new
// slices, and append only writes past the length of any earlier snapshot.
// Snapshots taken for a dispatch therefore stay stable without copying.
type registry[M Message] struct {
	byType map[string][]registration[M]
	global []registration[M]
}

func newRegistry[M Message]() *registry[M] {
	return &registry[M]{
		byType: make(map[string][]registration[M]),
	}
}

func (r *registry[M]) subscribe(id, typ string, fn Listener[M]) {
	r.byType[typ] = append(r.byType[typ], registration[M]{id: id, fn: fn})
}

func (r *registry[M]) subscribeAll(id string, fn Listener[M]) {
	r.global = append(r.global, registration[M]{id: id, fn: fn})
}

// snapshot returns the global listeners and the listeners for typ.
// An absent discriminator yields a nil typed sequence.
func (r *registry[M]) snapshot(typ string) (global, typed []registration[M]) {
	return slices.Clip(r.global), slices.Clip(r.byType[typ])
}

// remove drops every typed registration owned by id.
func (r *registry[M]) remove(id string) bool {
	removed := false
	for typ, regs := range r.byType {
		kept, ok := without(regs, id)
		if !ok {
			continue
		}
		removed = true
		if len(kept) == 0 {
			delete(r.byType, typ)
			continue
		}
		r.byType[typ] = kept
	}
	return removed
}

// removeGlobal drops every global registration owned by id.
func (r *registry[M]) removeGlobal(id string) bool {
	kept, ok := without(r.global, id)
	if ok {
		r.global = kept
	}
	return ok
}

func (r *registry[M]) has(id string) bool {
	for _, reg := range r.global {
		if reg.id == id {
			return true
		}
	}
	for _, regs := range r.byType {
		for _, reg := range regs {
			if reg.id == id {
				return true
			}
		}
	}
	return false
}

func (r *registry[M]) counts() (typed, global int) {
	for _, regs := range r.byType {
		typed += len(regs)
	}
	return typed, len(r.global)
}

// without returns a fresh slice holding regs minus the entries owned by id.
// The second result is false, and regs is returned untouched, when id owns
// nothing.
func without[M Message](regs []registration[M], id string) ([]registration[M], bool) {
	n := 0
	for _, reg := range regs {
		if reg.id == id {
			n++
		}
	}
	if n == 0 {
		return regs, false
	}
	kept := make([]registration[M], 0, len(regs)-n)
	for _, reg := range regs {
		if reg.id != id {
			kept = append(kept, reg)
		}
	}
	return kept, true
}
