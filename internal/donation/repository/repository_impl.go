package repository

import (
	"context"
	"errors"

	"github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, conn *gorm.DB, donation *domain.Donation) error {
	err := conn.WithContext(ctx).Create(donation).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *repo) FindByOrderID(ctx context.Context, conn *gorm.DB, orderID string) (*domain.Donation, error) {
	var donation domain.Donation
	err := conn.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

func (r *repo) FindByReference(ctx context.Context, conn *gorm.DB, paymentID, orderID string) (*domain.Donation, error) {
	stmt := conn.WithContext(ctx)
	switch {
	case paymentID != "" && orderID != "":
		stmt = stmt.Where("payment_id = ? OR order_id = ?", paymentID, orderID)
	case paymentID != "":
		stmt = stmt.Where("payment_id = ?", paymentID)
	case orderID != "":
		stmt = stmt.Where("order_id = ?", orderID)
	default:
		return nil, nil
	}

	var donation domain.Donation
	err := stmt.First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

func (r *repo) Update(ctx context.Context, conn *gorm.DB, donation *domain.Donation) error {
	return conn.WithContext(ctx).Save(donation).Error
}

func (r *repo) ListPaid(ctx context.Context, conn *gorm.DB, limit int) ([]*domain.Donation, error) {
	var donations []*domain.Donation
	err := conn.WithContext(ctx).
		Where("status IN ?", domain.PaidStatuses).
		Order("created_at desc").
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *repo) PaidTotals(ctx context.Context, conn *gorm.DB) (domain.Stats, error) {
	var stats domain.Stats
	err := conn.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount_usd), 0) AS total_amount, COUNT(*) AS total_donations
		 FROM donations
		 WHERE status IN ?`,
		domain.PaidStatuses,
	).Scan(&stats).Error
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (r *repo) InsertIPNEvent(ctx context.Context, conn *gorm.DB, event *domain.IPNEvent) error {
	return conn.WithContext(ctx).Create(event).Error
}
