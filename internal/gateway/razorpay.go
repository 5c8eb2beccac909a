package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KAVIN131005/Florist-Backend/internal/apperr"
)

const (
	defaultBaseURL = "https://api.razorpay.com/v1"
	currencyINR    = "INR"
)

// Client is the outbound interface to the payment gateway. The settlement
// path depends on this interface, not on the HTTP implementation.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)
	KeyID() string
}

// CreateOrderRequest describes a remote gateway order to open.
type CreateOrderRequest struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

// CreateOrderResponse carries the gateway's order reference.
type CreateOrderResponse struct {
	OrderID     string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// RazorpayClient talks to the Razorpay Orders API over HTTP basic auth.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayClient constructs a client with a bounded request timeout.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// KeyID returns the public key identifier handed to checkout clients.
func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

// CreateOrder opens a gateway order for the given minor-unit amount. Failures
// and timeouts surface as gateway errors; the call is never retried here.
func (c *RazorpayClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if req.Currency == "" {
		req.Currency = currencyINR
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway order payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.baseURL, "/")+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create gateway order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperr.NewGateway("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.NewGateway("read payment gateway response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.NewGateway(
			fmt.Sprintf("payment gateway returned status %d", resp.StatusCode), nil)
	}

	var result CreateOrderResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, apperr.NewGateway("decode payment gateway response", err)
	}
	if result.OrderID == "" {
		return nil, apperr.NewGateway("payment gateway response missing order id", nil)
	}

	return &result, nil
}

// MinorUnits converts a two-decimal currency amount to integer minor units
// (rupees to paise) using banker's rounding, so the displayed total and the
// charged total never drift by a paisa.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).RoundBank(0).IntPart()
}
