package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxRetries bounds both connection and read retries per request.
const maxRetries = 2

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsTimeoutErr reports whether err is a request-level timeout rather than a
// reachability problem.
func IsTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) doOnce(
	ctx context.Context,
	method string,
	url string,
	headers map[string]string,
	payload []byte,
	timeout time.Duration,
) (int, []byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// robustDo performs one logical GET or POST with bounded transport retries:
// connection/read failures and 502/503/504 responses are retried up to
// maxRetries times with exponential backoff. Non-2xx responses are returned
// to the caller, never turned into errors, so user-facing diagnostics can
// read status and body. The per-attempt timeout is independent of any
// deadline on ctx.
func (c *Client) robustDo(
	ctx context.Context,
	method string,
	url string,
	headers map[string]string,
	payload []byte,
	timeout time.Duration,
) (int, []byte, error) {
	back := backoff.NewExponentialBackOff()
	back.InitialInterval = c.retryInterval

	for attempt := 0; ; attempt++ {
		status, body, err := c.doOnce(ctx, method, url, headers, payload, timeout)
		if err == nil && !isRetryableStatus(status) {
			return status, body, nil
		}
		if attempt >= maxRetries || ctx.Err() != nil {
			return status, body, err
		}

		wait := time.NewTimer(back.NextBackOff())
		select {
		case <-ctx.Done():
			wait.Stop()
			return status, body, err
		case <-wait.C:
		}
	}
}
