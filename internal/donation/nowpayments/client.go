// Package nowpayments is the outbound client for the NOWPayments gateway.
package nowpayments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client calls the NOWPayments REST API. Outbound calls are bounded by the
// client's own timeout; callers do not add one.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

type CreatePaymentRequest struct {
	PriceAmount      float64 `json:"price_amount"`
	PriceCurrency    string  `json:"price_currency"`
	PayCurrency      string  `json:"pay_currency"`
	OrderID          string  `json:"order_id"`
	OrderDescription string  `json:"order_description"`
	IPNCallbackURL   string  `json:"ipn_callback_url"`
	SuccessURL       string  `json:"success_url"`
	CancelURL        string  `json:"cancel_url"`
}

type CreatePaymentResponse struct {
	PaymentID              json.Number `json:"payment_id"`
	PaymentStatus          string      `json:"payment_status"`
	PayAddress             string      `json:"pay_address"`
	PayAmount              float64     `json:"pay_amount"`
	PayCurrency            string      `json:"pay_currency"`
	InvoiceURL             string      `json:"invoice_url"`
	ExpirationEstimateDate string      `json:"expiration_estimate_date"`
}

// GatewayError carries the gateway's own error body for non-2xx responses.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return fmt.Sprintf("nowpayments: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("nowpayments: request failed (status %d)", e.StatusCode)
}

func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gerr := &GatewayError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &errBody) == nil {
			gerr.Message = errBody.Message
		}
		return nil, gerr
	}

	var payment CreatePaymentResponse
	if err := json.Unmarshal(raw, &payment); err != nil {
		return nil, fmt.Errorf("nowpayments: decode response: %w", err)
	}

	return &payment, nil
}
