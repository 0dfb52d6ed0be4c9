package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BrandonDHaskell/farecard/internal/farecard/service"
)

type recordingSink struct {
	mu  sync.Mutex
	ups []bool
}

func (s *recordingSink) SetCodeTableUp(up bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ups = append(s.ups, up)
}

func (s *recordingSink) Values() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.ups...)
}

func TestCodeTableProbe_DisabledWhenIntervalZero(t *testing.T) {
	sink := &recordingSink{}
	probe := service.NewCodeTableProbe(sampleTables(), service.ProbeConfig{}, silentLogger(), sink)

	probe.Start(context.Background())
	probe.Stop()

	if len(sink.Values()) != 0 {
		t.Errorf("disabled probe should not ping, got %v", sink.Values())
	}
}

func TestCodeTableProbe_StartStopLifecycle(t *testing.T) {
	// Stop before Start returns at once.
	idle := service.NewCodeTableProbe(sampleTables(), service.ProbeConfig{Interval: time.Hour}, silentLogger())
	stopped := make(chan struct{})
	go func() {
		idle.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start blocked")
	}

	// Repeated Start on a disabled probe is a no-op.
	disabled := service.NewCodeTableProbe(sampleTables(), service.ProbeConfig{}, silentLogger())
	disabled.Start(context.Background())
	disabled.Start(context.Background())
	disabled.Stop()

	// Repeated Start on a running probe keeps a single loop.
	sink := &recordingSink{}
	running := service.NewCodeTableProbe(sampleTables(), service.ProbeConfig{Interval: time.Hour}, silentLogger(), sink)
	running.Start(context.Background())
	running.Start(context.Background())
	deadline := time.Now().Add(time.Second)
	for len(sink.Values()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	running.Stop()
	if got := len(sink.Values()); got != 1 {
		t.Errorf("expected one initial ping, got %d", got)
	}
}

func TestCodeTableProbe_CheckPublishes(t *testing.T) {
	sink := &recordingSink{}

	up := service.NewCodeTableProbe(sampleTables(), service.ProbeConfig{}, silentLogger(), sink)
	if !up.Check(context.Background()) {
		t.Error("expected up")
	}

	down := service.NewCodeTableProbe(faultyProvider{err: errBackend}, service.ProbeConfig{}, silentLogger(), sink)
	if down.Check(context.Background()) {
		t.Error("expected down")
	}

	got := sink.Values()
	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("sink saw %v, want [true false]", got)
	}
}

func TestCodeTableProbe_RunsImmediatelyAndStops(t *testing.T) {
	sink := &recordingSink{}
	probe := service.NewCodeTableProbe(sampleTables(), service.ProbeConfig{Interval: time.Hour}, silentLogger(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	probe.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.Values()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(sink.Values()) == 0 {
		t.Fatal("expected an immediate ping")
	}

	// Multiple stops should not panic.
	probe.Stop()
	probe.Stop()
}
