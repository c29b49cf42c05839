// Package optimize posts finished atlas bytes to an external image
// optimization service. The collaborator is optional: without an API key no
// call is made, and any failure is surfaced as a non-fatal error so callers
// keep the unoptimized bytes.
package optimize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/spritepack/pkg/cache"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/httputil"
)

// DefaultURL is the production optimizer endpoint.
const DefaultURL = "https://api.tinify.com/shrink"

// DefaultTimeout bounds a single optimizer request.
const DefaultTimeout = 30 * time.Second

// cacheTTL controls how long optimized atlases are memoized. Identical
// input bytes always optimize to the same output, so entries only need to
// age out to bound disk usage.
const cacheTTL = 7 * 24 * time.Hour

// Client calls the optimization service. The zero value is a disabled
// client; set APIKey to enable it.
type Client struct {
	// APIKey is the service credential. Empty disables the client.
	APIKey string

	// URL overrides DefaultURL, mainly for tests.
	URL string

	// HTTPClient overrides http.DefaultClient.
	HTTPClient *http.Client

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Cache memoizes responses keyed by content hash. Nil disables
	// memoization.
	Cache cache.Cache
}

// Enabled reports whether the client holds a credential.
func (c *Client) Enabled() bool {
	return c != nil && c.APIKey != ""
}

// Optimize sends png through the optimization service and returns the
// optimized bytes. Transient failures (network errors, 5xx) are retried with
// backoff; any terminal failure is an OPTIMIZER_FAILURE the caller should
// treat as non-fatal.
func (c *Client) Optimize(ctx context.Context, png []byte) ([]byte, error) {
	if !c.Enabled() {
		return nil, errors.New(errors.ErrCodeOptimizerFailure, "no api key configured")
	}

	key := "optimize:" + cache.Hash(png)
	if c.Cache != nil {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			return data, nil
		}
	}

	var out []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		data, err := c.post(ctx, png)
		if err != nil {
			return err
		}
		out = data
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOptimizerFailure, err, "optimize atlas")
	}

	if c.Cache != nil {
		_ = c.Cache.Set(ctx, key, out, cacheTTL)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, png []byte) ([]byte, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := c.URL
	if url == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(png))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", c.APIKey)
	req.Header.Set("Content-Type", "image/png")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return io.ReadAll(resp.Body)
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{Err: fmt.Errorf("optimizer status %d", resp.StatusCode)}
	default:
		return nil, fmt.Errorf("optimizer status %d", resp.StatusCode)
	}
}
