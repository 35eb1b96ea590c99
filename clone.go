package siggn

// Clone returns a new, empty Bus with the same configuration. It shares no
// registrations, middleware or identity counter with b.
func (b *Bus[M]) Clone() *Bus[M] {
	return New[M](b.cfg)
}

// CloneAs returns a new, empty Bus for the wider contract W, configured like
// b. W is meant to be satisfied by every variant of M plus the new ones, for
// instance an interface embedding M's marker method next to a new one. The
// clone shares no state with b: messages published on either are never seen
// by listeners of the other.
func CloneAs[W, M Message](b *Bus[M]) *Bus[W] {
	return New[W](b.cfg)
}
