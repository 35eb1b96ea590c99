// Package test holds the message contract and helpers shared by the tests of
// this module.
package test

import (
	"context"
	"errors"
	"sync"

	"github.com/fxsml/siggn"
)

// CounterMsg is the closed contract of counter messages.
type CounterMsg interface {
	siggn.Message
	counterMsg()
}

// ResettableMsg widens CounterMsg with Reset.
type ResettableMsg interface {
	siggn.Message
	resettableMsg()
}

const (
	TypeIncrement = "increment_count"
	TypeDecrement = "decrement_count"
	TypeReset     = "reset_count"
)

type Increment struct {
	Value int
}

func (Increment) Type() string   { return TypeIncrement }
func (Increment) counterMsg()    {}
func (Increment) resettableMsg() {}

// Validate rejects negative increments.
func (m Increment) Validate() error {
	if m.Value < 0 {
		return errors.New("increment must not be negative")
	}
	return nil
}

type Decrement struct {
	Value int
}

func (Decrement) Type() string   { return TypeDecrement }
func (Decrement) counterMsg()    {}
func (Decrement) resettableMsg() {}

type Reset struct{}

func (Reset) Type() string   { return TypeReset }
func (Reset) resettableMsg() {}

// Event is an open message with a caller-chosen discriminator and ID.
type Event struct {
	Kind string
	ID   string
}

func (e Event) Type() string { return e.Kind }

// MessageID returns the event ID.
func (e Event) MessageID() string { return e.ID }

// Counter applies counter messages to a total.
type Counter struct {
	mu    sync.Mutex
	total int
}

// Apply updates the total for Increment, Decrement and Reset messages.
func (c *Counter) Apply(_ context.Context, msg siggn.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch m := msg.(type) {
	case Increment:
		c.total += m.Value
	case Decrement:
		c.total -= m.Value
	case Reset:
		c.total = 0
	}
}

// Listener returns c.Apply as a listener of the contract M.
func Listener[M siggn.Message](c *Counter) siggn.Listener[M] {
	return func(ctx context.Context, msg M) {
		c.Apply(ctx, msg)
	}
}

// Total returns the current total.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Recorder records strings in the order they were added.
type Recorder struct {
	mu      sync.Mutex
	entries []string
}

// Add appends s.
func (r *Recorder) Add(s string) {
	r.mu.Lock()
	r.entries = append(r.entries, s)
	r.mu.Unlock()
}

// Entries returns a copy of the recorded strings.
func (r *Recorder) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

// LogCall is one call recorded by Logger.
type LogCall struct {
	Level string
	Msg   string
	Args  []any
}

// Logger implements siggn.Logger and records every call.
type Logger struct {
	mu    sync.Mutex
	calls []LogCall
}

func (l *Logger) Debug(msg string, args ...any) { l.add("debug", msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.add("error", msg, args) }

func (l *Logger) add(level, msg string, args []any) {
	l.mu.Lock()
	l.calls = append(l.calls, LogCall{Level: level, Msg: msg, Args: args})
	l.mu.Unlock()
}

// Calls returns the recorded calls at level, or all calls when level is empty.
func (l *Logger) Calls(level string) []LogCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []LogCall
	for _, c := range l.calls {
		if level == "" || c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// Arg returns the value following key in args.
func Arg(args []any, key string) (any, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok && k == key {
			return args[i+1], true
		}
	}
	return nil, false
}
