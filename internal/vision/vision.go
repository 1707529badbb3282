// Package vision turns receipt photos into structured line items via LLM
// vision providers. Provider output is untrusted: it is validated before a
// bill can be created from it, and a failing provider falls through to the
// next configured one.
package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ParsedItem is one extracted line. Price is the total for the line
// (unit price × quantity), matching how receipts print amounts.
type ParsedItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

// ParsedReceipt is the structured result of one extraction.
type ParsedReceipt struct {
	Items          []ParsedItem `json:"items"`
	Taxes          []ParsedItem `json:"taxes,omitempty"`
	TotalAmount    float64      `json:"totalAmount"`
	RestaurantName string       `json:"restaurantName,omitempty"`
}

// Provider is a single vision backend.
type Provider interface {
	Name() string
	ParseReceipt(ctx context.Context, imageBase64 string) (*ParsedReceipt, error)
}

var (
	ErrNoProviders        = errors.New("no vision provider configured")
	ErrAllProvidersFailed = errors.New("all vision providers failed")
	ErrInvalidReceipt     = errors.New("extracted receipt failed validation")
)

// Service tries providers in order until one returns a valid receipt.
type Service struct {
	providers []Provider
}

func NewService(providers ...Provider) *Service {
	return &Service{providers: providers}
}

// Parse extracts a receipt from a base64 image. It returns the receipt and
// the name of the provider that produced it. It never fabricates output: if
// every provider fails or returns an invalid receipt, the caller gets an
// error with the per-provider detail.
func (s *Service) Parse(ctx context.Context, imageBase64 string) (*ParsedReceipt, string, error) {
	if len(s.providers) == 0 {
		return nil, "", ErrNoProviders
	}

	image := stripDataURLPrefix(imageBase64)
	if image == "" {
		return nil, "", fmt.Errorf("%w: empty image", ErrInvalidReceipt)
	}

	var failures []string

	for _, p := range s.providers {
		receipt, err := p.ParseReceipt(ctx, image)
		if err != nil {
			slog.Warn("vision provider failed", "provider", p.Name(), "error", err)
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))

			continue
		}

		if err := Validate(receipt); err != nil {
			slog.Warn("vision provider returned invalid receipt", "provider", p.Name(), "error", err)
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))

			continue
		}

		return receipt, p.Name(), nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrAllProvidersFailed, strings.Join(failures, "; "))
}

// Validate enforces the minimum shape a bill can be built from: at least one
// item, positive prices, a positive total.
func Validate(r *ParsedReceipt) error {
	if r == nil || len(r.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidReceipt)
	}

	for _, it := range r.Items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("%w: item with empty name", ErrInvalidReceipt)
		}

		if it.Price <= 0 {
			return fmt.Errorf("%w: item %q has non-positive price", ErrInvalidReceipt, it.Name)
		}
	}

	if r.TotalAmount <= 0 {
		return fmt.Errorf("%w: non-positive total", ErrInvalidReceipt)
	}

	return nil
}

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

func stripDataURLPrefix(s string) string {
	return strings.TrimSpace(dataURLPrefix.ReplaceAllString(s, ""))
}

// stripJSONFences removes the ```json fences models wrap their output in
// despite being told not to.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

const extractionPrompt = `Extract ALL items from this bill/receipt in JSON format. IMPORTANT:
- If an item appears multiple times, include the TOTAL price (price * quantity)
- Extract ALL taxes separately (GST, Service Tax, Service Charge, etc.) as separate entries
- Return format: {"items":[{"name":"item","price":TOTAL_PRICE,"quantity":qty,"category":"food/drink/service"}],"taxes":[{"name":"GST","price":amount,"quantity":1,"category":"tax"}],"totalAmount":finalTotal,"restaurantName":"name"}
- The "price" field should be the TOTAL price for that quantity
- Return ONLY valid JSON, no markdown, no backticks.`
