package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, donation *Donation) error
	FindByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*Donation, error)
	// FindByReference resolves a donation by payment id or order id; a
	// notification may carry either key depending on gateway version.
	FindByReference(ctx context.Context, db *gorm.DB, paymentID, orderID string) (*Donation, error)
	Update(ctx context.Context, db *gorm.DB, donation *Donation) error
	ListPaid(ctx context.Context, db *gorm.DB, limit int) ([]*Donation, error)
	PaidTotals(ctx context.Context, db *gorm.DB) (Stats, error)
	InsertIPNEvent(ctx context.Context, db *gorm.DB, event *IPNEvent) error
}
