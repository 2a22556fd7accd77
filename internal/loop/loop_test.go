package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()

	l := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l, cancel
}

func TestPostRunsInOrder(t *testing.T) {
	l, _ := startLoop(t)

	var got []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not drain")
	}

	for i, v := range got {
		if v != i {
			t.Fatalf("got %v, want ordered 0..4", got)
		}
	}
}

func TestRunReturnsContextError(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}

	<-l.Done()
	if l.Post(func() {}) {
		t.Error("Post after stop should report false")
	}
}

func TestAfterFuncFires(t *testing.T) {
	l, _ := startLoop(t)

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc callback did not run")
	}
}

func TestAfterFuncStop(t *testing.T) {
	l, _ := startLoop(t)

	var ran atomic.Bool
	timer := l.AfterFunc(20*time.Millisecond, func() { ran.Store(true) })
	if !timer.Stop() {
		t.Fatal("Stop() on pending timer should report true")
	}
	if timer.Stop() {
		t.Error("second Stop() should report false")
	}

	time.Sleep(50 * time.Millisecond)
	drained := make(chan struct{})
	l.Post(func() { close(drained) })
	<-drained

	if ran.Load() {
		t.Error("stopped timer callback ran")
	}
}

func TestAfterFuncStopAfterQueued(t *testing.T) {
	l, _ := startLoop(t)

	// block the loop so the fired callback stays queued
	release := make(chan struct{})
	l.Post(func() { <-release })

	var ran atomic.Bool
	timer := l.AfterFunc(time.Millisecond, func() { ran.Store(true) })
	time.Sleep(20 * time.Millisecond)

	if !timer.Stop() {
		t.Error("Stop() before the queued callback ran should report true")
	}
	close(release)

	drained := make(chan struct{})
	l.Post(func() { close(drained) })
	<-drained

	if ran.Load() {
		t.Error("callback ran after Stop")
	}
}

func TestTicker(t *testing.T) {
	l, _ := startLoop(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan struct{}, 10)
	l.Ticker(ctx, 2*time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatalf("tick %d did not arrive", i)
		}
	}
}
