package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "lingo/pkg/domain-errors"
)

// Loader fetches the parametric snapshot. Implemented by Client for
// production and by fixtures in tests.
type Loader interface {
	Load(ctx context.Context) (*ReferenceData, error)
}

// Client loads reference data from the profile backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Loader = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches GET /parametric/all. Any failure maps to
// CodeReferenceUnavailable: the wizard cannot start without the snapshot and
// the caller must retry the whole load.
func (c *Client) Load(ctx context.Context) (*ReferenceData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/parametric/all", nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeReferenceUnavailable, "failed to build parametric request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeReferenceUnavailable, "parametric data request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.New(dErrors.CodeReferenceUnavailable,
			fmt.Sprintf("parametric data request returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeReferenceUnavailable, "failed to read parametric response")
	}

	var rd ReferenceData
	if err := json.Unmarshal(body, &rd); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeReferenceUnavailable, "failed to parse parametric response")
	}
	return &rd, nil
}
