package engagement

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIIncrementer triggers server-side counter increments over the HTTP API.
// The download action carries the bearer credential; read does not need one.
type APIIncrementer struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewAPIIncrementer constructs an APIIncrementer for the given API base URL.
// token may be empty for read-only use.
func NewAPIIncrementer(baseURL, token string) *APIIncrementer {
	return &APIIncrementer{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Incrementer = (*APIIncrementer)(nil)

func (a *APIIncrementer) Increment(ctx context.Context, resourceID string, c Counter) error {
	u := fmt.Sprintf("%s/resources/%s/%s", a.baseURL, url.PathEscape(resourceID), string(c))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("build increment request: %w", err)
	}
	if c == Download && a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("increment %s: %w", c, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrResourceGone
	case resp.StatusCode >= 300:
		return fmt.Errorf("increment %s: unexpected status %d", c, resp.StatusCode)
	}
	return nil
}
