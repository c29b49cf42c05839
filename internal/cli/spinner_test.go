package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "working")
	if s.Cancelled() {
		t.Error("new spinner should not report cancelled")
	}
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopWithoutStartFrames(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "idle")
	s.Start()
	s.Stop() // immediate stop must not panic or deadlock
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "cancellable")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled should be true after context cancellation")
	}
	s.Stop()
}
