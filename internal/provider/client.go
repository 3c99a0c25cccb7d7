package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an unparseable error body ends up in messages
const maxErrorBody = 200

// httpClient posts JSON requests on behalf of a provider.
type httpClient struct {
	client *http.Client
	logger *slog.Logger
}

func newHTTPClient(timeout time.Duration, logger *slog.Logger) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// postJSON marshals payload, posts it and decodes the body into out. Non-2xx
// statuses become ErrAuth or ErrAPIFailure using apiMessage (called after a
// successful decode) for the detail.
func (c *httpClient) postJSON(ctx context.Context, url string, header http.Header, payload, out any, apiMessage func() string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending request", "url", redactURL(url), "bytes", len(body))

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("response received", "status", resp.StatusCode, "bytes", len(data))

	decodeErr := json.Unmarshal(data, out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil {
			msg = apiMessage()
		}
		if msg == "" {
			msg = truncate(strings.TrimSpace(string(data)), maxErrorBody)
		}
		return statusError(resp.StatusCode, msg)
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	return nil
}

func statusError(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w (%d): %s", ErrAuth, status, msg)
	}
	return fmt.Errorf("%w (%d): %s", ErrAPIFailure, status, msg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// redactURL drops the query string, which may carry credentials.
func redactURL(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
