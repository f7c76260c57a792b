// Package qrsvc is an HTTP client for the external QR rendering service.
// The service renders issued codes into scannable images and can verify a
// code string's authenticity. All calls carry a client-side timeout; there
// are no retries.
package qrsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
)

// Client talks to the QR rendering service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the service at baseURL with the given
// request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

var _ portssvc.CodeRenderer = (*Client)(nil)

type generatePayload struct {
	QRCode  string `json:"qr_code"`
	VenueID string `json:"venue_id"`
	Amount  string `json:"amount"`
}

type verifyPayload struct {
	QRCode string `json:"qr_code"`
}

// Generate asks the rendering service to produce an image for the code.
func (c *Client) Generate(ctx context.Context, code string, venueID string, amount decimal.Decimal) (*portssvc.RenderResult, error) {
	payload := generatePayload{QRCode: code, VenueID: venueID, Amount: amount.String()}

	var result portssvc.RenderResult
	if err := c.post(ctx, "/api/qr/generate", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify asks the rendering service whether the code string is authentic.
func (c *Client) Verify(ctx context.Context, code string) (*portssvc.VerifyResult, error) {
	payload := verifyPayload{QRCode: code}

	var result portssvc.VerifyResult
	if err := c.post(ctx, "/api/qr/validate", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("qr service call to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qr service call to %s failed: %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
