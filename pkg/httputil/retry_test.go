package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestRetryUpstreamRecovers drives Retry through the shape it exists for:
// an upstream image service that answers 502 twice before recovering.
func TestRetryUpstreamRecovers(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		resp, err := http.Get(srv.URL)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return &RetryableError{Err: fmt.Errorf("upstream returned %d", resp.StatusCode)}
		}
		return nil
	})
	if err != nil {
		t.Errorf("Retry error: %v", err)
	}
	if hits != 3 {
		t.Errorf("upstream hits = %d, want 3", hits)
	}
}

func TestRetryAttempts(t *testing.T) {
	permanent := errors.New("invalid api key")

	tests := []struct {
		name      string
		fail      int  // attempts that fail before success
		transient bool // failures are retryable
		wantCalls int
		wantErr   bool
	}{
		{name: "first try", fail: 0, wantCalls: 1},
		{name: "transient then ok", fail: 2, transient: true, wantCalls: 3},
		{name: "permanent stops immediately", fail: 3, transient: false, wantCalls: 1, wantErr: true},
		{name: "exhausted", fail: 3, transient: true, wantCalls: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.fail {
					if tt.transient {
						return &RetryableError{Err: errors.New("gateway timeout")}
					}
					return permanent
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		return &RetryableError{Err: cause}
	})
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want to unwrap to %v", err, cause)
	}
}

func TestRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		return &RetryableError{Err: errors.New("gateway timeout")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no sleep after cancel)", calls)
	}
}
