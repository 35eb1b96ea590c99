package siggn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note string

func (n note) Type() string { return string(n) }

func ids[M Message](regs []registration[M]) []string {
	out := make([]string, 0, len(regs))
	for _, r := range regs {
		out = append(out, r.id)
	}
	return out
}

func TestRegistry_Subscribe(t *testing.T) {
	r := newRegistry[note]()
	nop := func(context.Context, note) {}

	r.subscribe("a", "x", nop)
	r.subscribe("b", "x", nop)
	r.subscribe("a", "x", nop)
	r.subscribe("a", "y", nop)
	r.subscribeAll("g", nop)

	global, typed := r.snapshot("x")
	assert.Equal(t, []string{"g"}, ids(global))
	assert.Equal(t, []string{"a", "b", "a"}, ids(typed))

	_, typed = r.snapshot("absent")
	assert.Empty(t, typed)

	nTyped, nGlobal := r.counts()
	assert.Equal(t, 4, nTyped)
	assert.Equal(t, 1, nGlobal)
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("typed and global removal are independent", func(t *testing.T) {
		r := newRegistry[note]()
		nop := func(context.Context, note) {}
		r.subscribe("a", "x", nop)
		r.subscribeAll("a", nop)

		assert.True(t, r.remove("a"))
		global, typed := r.snapshot("x")
		assert.Empty(t, typed)
		assert.Equal(t, []string{"a"}, ids(global))

		assert.True(t, r.removeGlobal("a"))
		global, _ = r.snapshot("x")
		assert.Empty(t, global)
		assert.False(t, r.has("a"))
	})

	t.Run("unknown identity is a no-op", func(t *testing.T) {
		r := newRegistry[note]()
		r.subscribe("a", "x", func(context.Context, note) {})

		assert.False(t, r.remove("b"))
		assert.False(t, r.removeGlobal("b"))
		assert.True(t, r.has("a"))
	})

	t.Run("emptied discriminators are dropped", func(t *testing.T) {
		r := newRegistry[note]()
		r.subscribe("a", "x", func(context.Context, note) {})
		r.subscribe("b", "y", func(context.Context, note) {})

		r.remove("a")
		_, ok := r.byType["x"]
		assert.False(t, ok)
		assert.Len(t, r.byType["y"], 1)
	})
}

func TestRegistry_SnapshotIsStable(t *testing.T) {
	r := newRegistry[note]()
	nop := func(context.Context, note) {}
	r.subscribe("a", "x", nop)
	r.subscribe("b", "x", nop)
	r.subscribe("c", "x", nop)

	_, before := r.snapshot("x")

	r.remove("b")
	r.subscribe("d", "x", nop)

	require.Len(t, before, 3)
	assert.Equal(t, []string{"a", "b", "c"}, ids(before))

	_, after := r.snapshot("x")
	assert.Equal(t, []string{"a", "c", "d"}, ids(after))
}

func TestIDAllocator(t *testing.T) {
	a := &idAllocator{prefix: "p"}

	assert.Equal(t, "p1", a.allocate(""))
	assert.Equal(t, "p2", a.allocate(""))
	assert.Equal(t, "p2", a.allocate("p2"))
	assert.Equal(t, "p3", a.allocate(""))

	for range 33 {
		a.allocate("")
	}
	// Rendered in base 36.
	assert.Equal(t, "p11", a.allocate(""))
}
