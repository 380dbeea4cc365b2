package remnaclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"remna-tg-admin/internal/constants"
)

// Get makes a GET request to the API.
func (c *Client) Get(ctx context.Context, endpoint string, query map[string]string) *Payload {
	return c.execute(ctx, http.MethodGet, endpoint, nil, query, c.cfg.RetryCount)
}

// Post makes a POST request to the API.
func (c *Client) Post(ctx context.Context, endpoint string, body any) *Payload {
	return c.execute(ctx, http.MethodPost, endpoint, body, nil, c.cfg.RetryCount)
}

// Patch makes a PATCH request to the API.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) *Payload {
	return c.execute(ctx, http.MethodPatch, endpoint, body, nil, c.cfg.RetryCount)
}

// Delete makes a DELETE request to the API.
func (c *Client) Delete(ctx context.Context, endpoint string, query map[string]string) *Payload {
	return c.execute(ctx, http.MethodDelete, endpoint, nil, query, c.cfg.RetryCount)
}

// TestConnection probes a known-good endpoint to verify API reachability.
func (c *Client) TestConnection(ctx context.Context) bool {
	timeout := c.cfg.Timeout
	if timeout <= 0 || timeout > constants.PreflightTimeout {
		timeout = constants.PreflightTimeout
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.httpClient.R().SetContext(probeCtx).Get(joinURL(c.cfg.BaseURL, "users"))
	if err != nil {
		c.logger.Debugf("Connectivity test failed: %v", err)
		return false
	}

	c.logger.Debugf("Connectivity test: status %d", resp.StatusCode())
	return resp.StatusCode() == http.StatusOK
}

// execute issues one logical API call with retry and response normalization.
// Every failure mode collapses to a nil payload: callers cannot distinguish
// "not found" from "failed after retries" and must treat both as absence.
func (c *Client) execute(ctx context.Context, method, endpoint string, body any, query map[string]string, attempts int) *Payload {
	if attempts <= 0 {
		attempts = constants.DefaultRetryCount
	}

	url := joinURL(c.cfg.BaseURL, endpoint)
	c.logger.Infof("Making %s request to: %s", method, url)
	if len(query) > 0 {
		c.logger.Debugf("Request params: %v", query)
	}

	for attempt := 0; attempt < attempts; attempt++ {
		// Preflight gates the first attempt only; on failure the loop
		// re-enters at attempt 1 and the main call proceeds directly.
		if c.cfg.Preflight && attempt == 0 {
			if !c.TestConnection(ctx) {
				c.logger.Warn("Connectivity test failed, request skipped")
				if attempts <= 1 {
					return nil
				}
				if !c.wait(ctx, constants.PreflightRetryWait) {
					return nil
				}
				continue
			}
		}

		req := c.httpClient.R().SetContext(ctx)
		if len(query) > 0 {
			req.SetQueryParams(query)
		}
		if body != nil && methodHasBody(method) {
			req.SetBody(body)
		}

		resp, err := req.Execute(method, url)
		if err != nil {
			if !c.retryAfterError(ctx, err, attempt, attempts) {
				return nil
			}
			continue
		}

		status := resp.StatusCode()
		switch {
		case status >= http.StatusInternalServerError:
			c.logger.Warnf("Server error %d from %s, retrying", status, url)
			if attempt >= attempts-1 {
				return nil
			}
			if !c.wait(ctx, c.backoff(attempt, 0)) {
				return nil
			}
			continue

		case status == http.StatusNotFound:
			// Valid "not found" result, no retry.
			c.logger.Infof("HTTP 404 for %s", url)
			return nil

		case status >= http.StatusBadRequest:
			c.logger.Errorf("HTTP error %d for %s: %s", status, url, resp.Body())
			return nil

		case status == http.StatusNoContent || status == http.StatusResetContent:
			return nil
		}

		contentType := resp.Header().Get("Content-Type")
		if !strings.Contains(strings.ToLower(contentType), "application/json") {
			c.logger.Errorf("Expected JSON, got %q from %s", contentType, url)
			return nil
		}

		responseBody := bytes.TrimSpace(resp.Body())
		if len(responseBody) == 0 {
			c.logger.Warn("Received empty response body")
			return nil
		}

		return Unwrap(responseBody, c.logger)
	}

	return nil
}

// retryAfterError classifies a transport-level failure and sleeps the
// backoff for its class. Returns false when the attempt budget is spent or
// the context is done.
func (c *Client) retryAfterError(ctx context.Context, err error, attempt, attempts int) bool {
	var wait time.Duration

	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		c.logger.Errorf("Timeout on attempt %d: %v", attempt+1, err)
		wait = c.backoff(attempt, constants.TimeoutBackoffCap)
	case isConnectionError(err):
		c.logger.Errorf("Connection error on attempt %d: %v", attempt+1, err)
		wait = c.backoff(attempt, 0)
	case isProtocolError(err):
		c.logger.Errorf("Protocol error on attempt %d: %v", attempt+1, err)
		wait = c.backoff(attempt, 0)
	default:
		c.logger.Errorf("Unexpected error on attempt %d: %v", attempt+1, err)
		wait = c.backoff(attempt, 0)
	}

	if attempt >= attempts-1 {
		c.logger.Errorf("Giving up after %d attempts: %v", attempts, err)
		return false
	}

	c.logger.Infof("Retrying in %v...", wait)
	return c.wait(ctx, wait)
}

// backoff returns 2^attempt units, optionally capped. The limit is given
// in real time and scales with the unit so tests can compress the clock.
func (c *Client) backoff(attempt int, limit time.Duration) time.Duration {
	units := 1 << attempt
	if limit > 0 {
		capUnits := int(limit / time.Second)
		if capUnits > 0 && units > capUnits {
			units = capUnits
		}
	}
	return time.Duration(units) * c.backoffUnit
}

// wait sleeps cooperatively, returning false if the context finishes first.
func (c *Client) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func isProtocolError(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut:
		return true
	}
	return false
}

// joinURL joins a normalized base URL and an endpoint, trimming redundant
// slashes.
func joinURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
