// Package razorpay implements the payment.Gateway interface against the
// Razorpay orders API.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const ordersURL = "https://api.razorpay.com/v1/orders"

type Client struct {
	keyID     string
	keySecret string
	client    *http.Client
}

func New(keyID, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.keyID != "" && c.keySecret != ""
}

func (c *Client) KeyID() string {
	return c.keyID
}

type orderRequest struct {
	Amount   int64             `json:"amount"` // minor units (paise)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID string `json:"id"`
}

// CreateOrder opens a gateway order for the given amount in minor currency
// units and returns the gateway's order id.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency string, notes map[string]string) (string, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
		Notes:    notes,
	})
	if err != nil {
		return "", fmt.Errorf("encoding order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ordersURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing order request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading order response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, raw)
	}

	var order orderResponse
	if err := json.Unmarshal(raw, &order); err != nil {
		return "", fmt.Errorf("decoding order response: %w", err)
	}

	if order.ID == "" {
		return "", fmt.Errorf("gateway returned no order id")
	}

	return order.ID, nil
}
