package llm

import (
	"context"
	"sync"
	"time"
)

// pacedProvider spaces Complete calls evenly so hosted backends with
// request-per-minute quotas never see a burst. The local Ollama path is not
// wrapped.
type pacedProvider struct {
	provider Provider
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewRateLimitedProvider wraps provider so at most rpm requests start per
// minute, spaced evenly. Waiting respects context cancellation, but a
// cancelled caller still consumes its reserved slot.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	if rpm <= 0 {
		rpm = 60
	}
	return &pacedProvider{
		provider: provider,
		interval: time.Minute / time.Duration(rpm),
	}
}

func (p *pacedProvider) Name() string {
	return p.provider.Name()
}

func (p *pacedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	p.mu.Lock()
	now := time.Now()
	if p.next.Before(now) {
		p.next = now
	}
	wait := p.next.Sub(now)
	p.next = p.next.Add(p.interval)
	p.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return p.provider.Complete(ctx, req)
}
