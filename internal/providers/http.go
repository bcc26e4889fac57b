package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// upstream is a thin JSON-over-HTTP client shared by the provider
// implementations. Any transport error, non-200 status, or undecodable
// body is reported as ErrProviderUnavailable so callers can route to
// their synthetic fallback without inspecting the cause.
type upstream struct {
	baseURL    string
	httpClient *http.Client
}

func newUpstream(baseURL string, timeout time.Duration) *upstream {
	return &upstream{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// getJSON performs a GET against path with the given query parameters
// and decodes the response body into out.
func (u *upstream) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	if u == nil || u.baseURL == "" {
		return ErrProviderUnavailable
	}

	parsed, err := url.Parse(u.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	q := parsed.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	parsed.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close() // Explicitly ignore close error
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: upstream returned status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrProviderUnavailable, err)
	}

	return nil
}
