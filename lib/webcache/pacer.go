package webcache

import (
	"context"
	"log/slog"
	"time"
)

// RequestPacer enforces a minimum wall-clock interval between
// consecutive outbound requests. It assumes sequential use from a
// single goroutine, same as the store that owns it.
type RequestPacer struct {
	interval time.Duration
	// zero until the first request, so the first call never waits
	last time.Time
}

func NewRequestPacer(interval time.Duration) *RequestPacer {
	return &RequestPacer{interval: interval}
}

// Wait blocks until at least the configured interval has passed since
// the previous call. The pacer state advances even when the wait is cut
// short by context cancellation, the attempt still counts.
func (p *RequestPacer) Wait(ctx context.Context) error {
	defer func() {
		p.last = time.Now()
	}()

	if p.last.IsZero() || p.interval <= 0 {
		return nil
	}
	elapsed := time.Since(p.last)
	if elapsed >= p.interval {
		return nil
	}

	wait := p.interval - elapsed
	slog.Debug("waiting before sending next request", "wait", wait)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
