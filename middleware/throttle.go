package middleware

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/time/rate"

	"github.com/fxsml/siggn"
)

// ThrottleConfig configures the throttle middleware.
type ThrottleConfig struct {
	// Rate is the number of messages per second. Zero or negative means
	// unlimited.
	Rate float64 `yaml:"rate"`
	// Burst is the bucket size. Defaults to max(1, ceil(Rate)).
	Burst int `yaml:"burst"`
	// Wait blocks the publish until a token is available instead of
	// dropping the message. The wait honors the publish context.
	Wait bool `yaml:"wait"`
	// PerType keeps one bucket per discriminator.
	PerType bool `yaml:"per_type"`
}

// Throttle limits the publish rate with a token bucket. Over the limit the
// message is dropped, or with Wait set the publish blocks until a token is
// available; a wait cut short by the context returns ErrThrottled.
func Throttle[M siggn.Message](cfg ThrottleConfig) siggn.Middleware[M] {
	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = max(1, int(math.Ceil(cfg.Rate)))
	}

	var (
		mu       sync.Mutex
		shared   = rate.NewLimiter(limit, burst)
		limiters = map[string]*rate.Limiter{}
	)
	limiterFor := func(typ string) *rate.Limiter {
		if !cfg.PerType {
			return shared
		}
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[typ]
		if !ok {
			l = rate.NewLimiter(limit, burst)
			limiters[typ] = l
		}
		return l
	}

	return func(ctx context.Context, msg M, next siggn.Next) error {
		l := limiterFor(msg.Type())
		if !cfg.Wait {
			if !l.Allow() {
				return nil
			}
			return next(ctx)
		}
		if err := l.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrThrottled, err)
		}
		return next(ctx)
	}
}
