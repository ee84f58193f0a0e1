package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "lingo/pkg/domain-errors"
)

// ProfileRecord is the backend's view of a stored profile, fetched for
// edit-mode and resubmission prefill. Amounts come back as strings because
// the backend echoes raw form input.
type ProfileRecord struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 string  `json:"address_line2"`
	City         string  `json:"city"`
	RegionCode   string  `json:"region_code"`
	PostalCode   string  `json:"postal_code"`
	Formatted    string  `json:"formatted_address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	Languages     []LanguageEntry     `json:"languages"`
	Certificates  []CertificateEntry  `json:"certificates"`
	ServiceRates  []StoredServiceRate `json:"service_rates"`
	W9EntryMethod string              `json:"w9_entry_method"`
	W9Data        *W9Entry            `json:"w9_data,omitempty"`

	// RejectedFields is present when the last submission was rejected.
	RejectedFields []string `json:"rejected_fields,omitempty"`
}

// StoredServiceRate mirrors ServiceRateEntry with string amounts, as echoed
// by the backend.
type StoredServiceRate struct {
	ServiceTypeID        string               `json:"service_type_id"`
	RateType             string               `json:"rate_type"`
	Amount               string               `json:"amount"`
	Unit                 string               `json:"unit"`
	MinimumHours         string               `json:"minimum_hours,omitempty"`
	IntervalMinutes      int                  `json:"interval_minutes,omitempty"`
	SecondIntervalAmount string               `json:"second_interval_amount,omitempty"`
	SecondIntervalUnit   string               `json:"second_interval_unit,omitempty"`
	LanguageRates        []StoredLanguageRate `json:"language_rates,omitempty"`
}

// StoredLanguageRate carries a raw override amount; blank and non-numeric
// values survive here and are filtered at assembly.
type StoredLanguageRate struct {
	LanguageID string `json:"language_id"`
	Amount     string `json:"amount"`
	Unit       string `json:"unit"`
}

// PendingUpdate describes a queued profile update awaiting admin approval.
type PendingUpdate struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
}

// Client talks to the profile backend. The bearer token is supplied per
// request by the caller; the client holds no credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

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

// CreateProfile posts the first submission. A rejected payload surfaces as
// CodeSubmissionRejected with the backend's message so the caller can keep
// the draft for correction.
func (c *Client) CreateProfile(ctx context.Context, token string, p *Payload, files map[string][]byte) error {
	return c.postMultipart(ctx, token, "/interpreters", p, files)
}

// SubmitUpdate queues a profile update pending admin approval.
func (c *Client) SubmitUpdate(ctx context.Context, token string, p *Payload, files map[string][]byte) error {
	return c.postMultipart(ctx, token, "/interpreters/profile/update", p, files)
}

// FetchProfile loads the stored profile for edit and resubmission prefill.
func (c *Client) FetchProfile(ctx context.Context, token string) (*ProfileRecord, error) {
	var record ProfileRecord
	if err := c.getJSON(ctx, token, "/interpreters/profile", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// FetchPendingUpdate inspects the queued update, if any.
func (c *Client) FetchPendingUpdate(ctx context.Context, token string) (*PendingUpdate, error) {
	var pending PendingUpdate
	if err := c.getJSON(ctx, token, "/interpreters/profile/pending-update", &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

// CancelPendingUpdate withdraws the queued update.
func (c *Client) CancelPendingUpdate(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/interpreters/profile/pending-update", nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "pending update cancellation failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, "no pending update to cancel")
	default:
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
}

func (c *Client) postMultipart(ctx context.Context, token, path string, p *Payload, files map[string][]byte) error {
	body, contentType, err := EncodeMultipart(p, files)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "submission request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return dErrors.New(dErrors.CodePendingUpdateExists, "an update is already pending review")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return dErrors.New(dErrors.CodeSubmissionRejected, rejectionMessage(resp.Body))
	default:
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("submission returned status %d", resp.StatusCode))
	}
}

func (c *Client) getJSON(ctx context.Context, token, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "profile request failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to parse profile response")
		}
		return nil
	case http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, "profile not found")
	default:
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("profile request returned status %d", resp.StatusCode))
	}
}

// rejectionMessage extracts the backend's error description, falling back to
// a generic message when the body is not the expected envelope.
func rejectionMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return "submission rejected"
	}
	var envelope struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Description != "" {
			return envelope.Description
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		return string(raw)
	}
	return "submission rejected"
}
