package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status is a donation lifecycle state, mirroring the gateway's
// payment_status vocabulary.
type Status string

const (
	StatusWaiting       Status = "waiting"
	StatusConfirming    Status = "confirming"
	StatusConfirmed     Status = "confirmed"
	StatusSending       Status = "sending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFinished      Status = "finished"
	StatusFailed        Status = "failed"
	StatusRefunded      Status = "refunded"
	StatusExpired       Status = "expired"
)

// PaidStatuses are the states counted as a successful settlement for
// reporting purposes.
var PaidStatuses = []Status{StatusFinished, StatusConfirmed}

// statusRank orders statuses by lifecycle progress. A webhook reporting a
// lower-ranked status than the stored one is acknowledged but not applied,
// so a late "waiting" can never regress a settled record.
var statusRank = map[Status]int{
	StatusWaiting:       0,
	StatusConfirming:    1,
	StatusPartiallyPaid: 2,
	StatusConfirmed:     2,
	StatusSending:       3,
	StatusFinished:      4,
	StatusFailed:        4,
	StatusRefunded:      4,
	StatusExpired:       4,
}

// Known reports whether the gateway status is part of the lifecycle
// vocabulary.
func (s Status) Known() bool {
	_, ok := statusRank[s]
	return ok
}

// IsPaid reports whether the status counts as settled.
func (s Status) IsPaid() bool {
	return s == StatusFinished || s == StatusConfirmed
}

// CanTransition reports whether moving from s to next is a forward move in
// the lifecycle. Equal-rank rewrites are allowed so replayed notifications
// of the current status stay idempotent.
func (s Status) CanTransition(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return true
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// Donation is a pledge record created before payment confirmation. One
// record per donation intent, never reused and never deleted.
type Donation struct {
	ID snowflake.ID `gorm:"primaryKey" json:"-"`

	// PaymentID is assigned by the gateway, or synthesized in offline mode.
	// Absent until the gateway responds.
	PaymentID string `gorm:"column:payment_id;type:text;uniqueIndex" json:"payment_id"`
	// OrderID is generated locally at creation and is the durable
	// correlation key for status queries and IPN reconciliation.
	OrderID string `gorm:"column:order_id;type:text;not null;uniqueIndex" json:"order_id"`

	DonorName    string `gorm:"column:donor_name;type:text" json:"donor_name"`
	DonorEmail   string `gorm:"column:donor_email;type:text" json:"donor_email,omitempty"`
	DonorMessage string `gorm:"column:donor_message;type:text" json:"donor_message,omitempty"`

	AmountUSD    float64 `gorm:"column:amount_usd;not null" json:"amount_usd"`
	PayCurrency  string  `gorm:"column:pay_currency;type:text" json:"pay_currency"`
	PayAmount    float64 `gorm:"column:pay_amount" json:"pay_amount"`
	PayAddress   string  `gorm:"column:pay_address;type:text" json:"pay_address"`
	ActuallyPaid float64 `gorm:"column:actually_paid" json:"actually_paid"`

	Status     Status `gorm:"column:status;type:text;not null;index" json:"status"`
	InvoiceURL string `gorm:"column:invoice_url;type:text" json:"invoice_url,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;not null;index:,sort:desc" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
	PaidAt    *time.Time `gorm:"column:paid_at" json:"paid_at"`
}

func (Donation) TableName() string { return "donations" }

// IPNEvent journals every accepted IPN callback with its raw payload.
type IPNEvent struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	OrderID    string         `gorm:"column:order_id;type:text;not null;index" json:"order_id"`
	PaymentID  string         `gorm:"column:payment_id;type:text" json:"payment_id"`
	Status     Status         `gorm:"column:status;type:text;not null" json:"status"`
	Applied    bool           `gorm:"column:applied;not null" json:"applied"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`
	ReceivedAt time.Time      `gorm:"column:received_at;not null" json:"received_at"`
}

func (IPNEvent) TableName() string { return "donation_ipn_events" }

// Notification is the strongly-typed projection of an IPN payload. The raw
// key-value map never travels past the verifier boundary.
type Notification struct {
	PaymentID     string
	OrderID       string
	PaymentStatus Status
	ActuallyPaid  float64
	Raw           []byte
}

// Currency describes a supported donation instrument.
type Currency struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Network     string  `json:"network"`
	MinAmount   float64 `json:"min_amount"`
	Description string  `json:"description,omitempty"`
}
