package middleware

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fxsml/siggn"
)

// DefaultDedupeSize is the number of remembered message IDs when
// DedupeConfig.Size is not set.
const DefaultDedupeSize = 1024

// DedupeConfig configures the dedupe middleware.
type DedupeConfig struct {
	// Size is the number of most recently seen IDs remembered.
	Size int `yaml:"size"`
}

// Identified is implemented by messages that carry a unique ID.
type Identified interface {
	MessageID() string
}

// Dedupe drops messages whose (type, ID) pair was seen among the last Size
// publishes. Messages that do not implement Identified, or have an empty
// ID, always pass. An ID is forgotten again when the rest of the chain
// returns an error.
func Dedupe[M siggn.Message](cfg DedupeConfig) siggn.Middleware[M] {
	size := cfg.Size
	if size <= 0 {
		size = DefaultDedupeSize
	}
	// lru.New only fails for non-positive sizes.
	seen, _ := lru.New[string, struct{}](size)

	return func(ctx context.Context, msg M, next siggn.Next) error {
		m, ok := any(msg).(Identified)
		if !ok || m.MessageID() == "" {
			return next(ctx)
		}
		key := msg.Type() + "\x00" + m.MessageID()
		if found, _ := seen.ContainsOrAdd(key, struct{}{}); found {
			return nil
		}
		err := next(ctx)
		if err != nil {
			// A failed message does not use up its ID, so a retry passes.
			seen.Remove(key)
		}
		return err
	}
}
