package domain

import (
	"context"
	"errors"
	"time"
)

const (
	MinAmountUSD = 1.0
	MaxAmountUSD = 100.0

	// DefaultCurrency is the single instrument currently supported.
	DefaultCurrency = "usdttrc20"
)

type CreateDonationRequest struct {
	Amount     float64
	DonorName  string
	DonorEmail string
	Message    string

	// Origin is the scheme://host of the inbound request, used to derive
	// the gateway callback URLs in live mode.
	Origin string
}

type CreateDonationResponse struct {
	PaymentID   string    `json:"payment_id"`
	PayAddress  string    `json:"pay_address"`
	PayAmount   float64   `json:"pay_amount"`
	PayCurrency string    `json:"pay_currency"`
	OrderID     string    `json:"order_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	OfflineMode bool      `json:"demo_mode,omitempty"`
}

// StatusView is the redacted projection returned on status queries.
type StatusView struct {
	OrderID   string     `json:"order_id"`
	AmountUSD float64    `json:"amount_usd"`
	Status    Status     `json:"status"`
	DonorName string     `json:"donor_name"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at"`
}

// RecentDonation is the public attribution line for a settled donation.
type RecentDonation struct {
	Name    string    `json:"name"`
	Amount  float64   `json:"amount"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

type Stats struct {
	TotalAmount    float64 `json:"total_amount"`
	TotalDonations int64   `json:"total_donations"`
}

type RecentDonationsResponse struct {
	Donations []RecentDonation `json:"donations"`
	Stats     Stats            `json:"stats"`
}

type Service interface {
	// Create validates the pledge and persists exactly one donation record
	// on success, none on failure.
	Create(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error)
	// Reconcile applies an authenticated gateway notification to the
	// matching record. Safe under at-least-once redelivery.
	Reconcile(ctx context.Context, n Notification) error
	// Status returns the redacted projection for an order id.
	Status(ctx context.Context, orderID string) (*StatusView, error)
	// Recent returns the latest settled donations plus cumulative totals.
	Recent(ctx context.Context) (*RecentDonationsResponse, error)
	// Currencies lists the supported donation instruments.
	Currencies() []Currency
}

var (
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("donation_not_found")
	ErrDuplicate     = errors.New("duplicate_donation")
	ErrGateway       = errors.New("gateway_error")
)
