package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonDHaskell/farecard/internal/farecard/store"
)

// StatusSink is told whether the code-table backend answered the last ping.
type StatusSink interface {
	SetCodeTableUp(up bool)
}

// CodeTableProbe periodically pings the code-table provider and publishes
// the result to its sinks. It runs as a background goroutine and is safe
// to stop via its context or the Stop method.
//
// An interval of 0 disables probing.
type CodeTableProbe struct {
	provider store.CodeTableProvider
	interval time.Duration
	timeout  time.Duration
	sinks    []StatusSink
	logger   *slog.Logger
	done     chan struct{}

	startOnce sync.Once

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	last    *bool
}

// ProbeConfig holds the parameters for NewCodeTableProbe.
type ProbeConfig struct {
	// Interval between pings. 0 disables the probe.
	Interval time.Duration

	// Timeout for a single ping. Defaults to 2s.
	Timeout time.Duration
}

// NewCodeTableProbe creates a probe but does not start it.
func NewCodeTableProbe(p store.CodeTableProvider, cfg ProbeConfig, logger *slog.Logger, sinks ...StatusSink) *CodeTableProbe {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CodeTableProbe{
		provider: p,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		sinks:    sinks,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start pings once immediately, then on every interval, until ctx is
// cancelled or Stop is called. Calls after the first are no-ops.
func (p *CodeTableProbe) Start(ctx context.Context) {
	p.startOnce.Do(func() { p.start(ctx) })
}

func (p *CodeTableProbe) start(ctx context.Context) {
	if p.interval <= 0 {
		p.mu.Lock()
		p.started = true
		p.mu.Unlock()
		close(p.done)
		p.logger.Info("code table probe disabled")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.started, p.cancel = true, cancel
	p.mu.Unlock()
	go p.loop(ctx)

	p.logger.Info("code table probe started", slog.Duration("interval", p.interval))
}

// Stop signals the probe to exit and waits for it. Safe to call repeatedly,
// and returns at once if Start was never called.
func (p *CodeTableProbe) Stop() {
	p.mu.Lock()
	started, cancel := p.started, p.cancel
	p.mu.Unlock()

	if !started {
		return
	}
	if cancel != nil {
		cancel()
	}
	<-p.done
}

// Check pings the provider once and publishes the result.
func (p *CodeTableProbe) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.provider.Ping(ctx)
	up := err == nil

	p.mu.Lock()
	changed := p.last == nil || *p.last != up
	p.last = &up
	p.mu.Unlock()

	if changed {
		if up {
			p.logger.Info("code table backend up")
		} else {
			p.logger.Error("code table backend down", slog.Any("err", err))
		}
	}

	for _, s := range p.sinks {
		s.SetCodeTableUp(up)
	}
	return up
}

func (p *CodeTableProbe) loop(ctx context.Context) {
	defer close(p.done)

	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
