package siggn

// Scope is a view of a Bus with the subscriber identity filled in.
// It holds no state of its own.
type Scope[M Message] struct {
	bus *Bus[M]
	id  string
}

// Make returns a Scope bound to id.
func (b *Bus[M]) Make(id string) *Scope[M] {
	return &Scope[M]{bus: b, id: id}
}

// ID returns the bound identity.
func (s *Scope[M]) ID() string { return s.id }

// Subscribe registers fn for typ under the bound identity.
func (s *Scope[M]) Subscribe(typ string, fn Listener[M]) {
	s.bus.Subscribe(s.id, typ, fn)
}

// SubscribeMany registers several listeners under the bound identity.
func (s *Scope[M]) SubscribeMany(setup func(subscribe SubscribeFunc[M])) {
	s.bus.SubscribeMany(s.id, setup)
}

// SubscribeAll registers fn for every message under the bound identity.
func (s *Scope[M]) SubscribeAll(fn Listener[M]) {
	s.bus.SubscribeAll(s.id, fn)
}

// Unsubscribe removes all registrations of the bound identity.
func (s *Scope[M]) Unsubscribe() {
	s.bus.Unsubscribe(s.id)
}

// UnsubscribeGlobal removes the global registrations of the bound identity.
func (s *Scope[M]) UnsubscribeGlobal() {
	s.bus.UnsubscribeGlobal(s.id)
}
