package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/goalline/wc26/internal/config"
	"github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/internal/donation/nowpayments"
	"github.com/goalline/wc26/internal/observability/metrics"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	offlineExpiry = time.Hour
	recentLimit   = 10
)

// Gateway is the outbound payment gateway contract.
type Gateway interface {
	CreatePayment(ctx context.Context, req nowpayments.CreatePaymentRequest) (*nowpayments.CreatePaymentResponse, error)
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Cfg     config.Config
	Repo    domain.Repository
	Gateway Gateway          `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	cfg     config.Config
	repo    domain.Repository
	gateway Gateway
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("donation.service"),
		genID:   p.GenID,
		cfg:     p.Cfg,
		repo:    p.Repo,
		gateway: p.Gateway,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDonationRequest) (*domain.CreateDonationResponse, error) {
	amount := req.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) ||
		amount < domain.MinAmountUSD || amount > domain.MaxAmountUSD {
		return nil, domain.ErrInvalidAmount
	}

	orderID := newOrderID()

	if s.cfg.DonationOfflineMode || s.gateway == nil {
		return s.createOffline(ctx, req, orderID, amount)
	}
	return s.createLive(ctx, req, orderID, amount)
}

// createOffline fabricates payment details locally. Used when the gateway
// cannot reach this host with callbacks.
func (s *Service) createOffline(ctx context.Context, req domain.CreateDonationRequest, orderID string, amount float64) (*domain.CreateDonationResponse, error) {
	now := time.Now().UTC()
	paymentID := "demo_" + strings.ToLower(ulid.Make().String())

	donation := &domain.Donation{
		ID:           s.genID.Generate(),
		PaymentID:    paymentID,
		OrderID:      orderID,
		DonorName:    donorName(req.DonorName),
		DonorEmail:   strings.TrimSpace(req.DonorEmail),
		DonorMessage: strings.TrimSpace(req.Message),
		AmountUSD:    amount,
		PayCurrency:  domain.DefaultCurrency,
		PayAmount:    amount,
		PayAddress:   s.cfg.DonationWallet,
		Status:       domain.StatusWaiting,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, donation); err != nil {
		return nil, err
	}

	s.log.Info("offline donation created",
		zap.String("order_id", orderID),
		zap.Float64("amount_usd", amount),
	)
	if s.metrics != nil {
		s.metrics.RecordDonationCreated("offline")
	}

	return &domain.CreateDonationResponse{
		PaymentID:   paymentID,
		PayAddress:  s.cfg.DonationWallet,
		PayAmount:   amount,
		PayCurrency: domain.DefaultCurrency,
		OrderID:     orderID,
		ExpiresAt:   now.Add(offlineExpiry),
		OfflineMode: true,
	}, nil
}

func (s *Service) createLive(ctx context.Context, req domain.CreateDonationRequest, orderID string, amount float64) (*domain.CreateDonationResponse, error) {
	origin := strings.TrimRight(strings.TrimSpace(req.Origin), "/")

	payment, err := s.gateway.CreatePayment(ctx, nowpayments.CreatePaymentRequest{
		PriceAmount:      amount,
		PriceCurrency:    "usd",
		PayCurrency:      domain.DefaultCurrency,
		OrderID:          orderID,
		OrderDescription: fmt.Sprintf("Donation to FIFA World Cup 2026 Project - $%g", amount),
		IPNCallbackURL:   origin + "/donate/ipn",
		SuccessURL:       origin + "/?donation=success",
		CancelURL:        origin + "/?donation=cancelled",
	})
	if err != nil {
		s.log.Error("gateway create payment failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, err
	}

	status := domain.Status(strings.TrimSpace(payment.PaymentStatus))
	if status == "" {
		status = domain.StatusWaiting
	}

	now := time.Now().UTC()
	donation := &domain.Donation{
		ID:           s.genID.Generate(),
		PaymentID:    payment.PaymentID.String(),
		OrderID:      orderID,
		DonorName:    donorName(req.DonorName),
		DonorEmail:   strings.TrimSpace(req.DonorEmail),
		DonorMessage: strings.TrimSpace(req.Message),
		AmountUSD:    amount,
		PayCurrency:  payment.PayCurrency,
		PayAmount:    payment.PayAmount,
		PayAddress:   payment.PayAddress,
		Status:       status,
		InvoiceURL:   payment.InvoiceURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, donation); err != nil {
		return nil, err
	}

	s.log.Info("donation created",
		zap.String("order_id", orderID),
		zap.String("payment_id", donation.PaymentID),
		zap.Float64("amount_usd", amount),
	)
	if s.metrics != nil {
		s.metrics.RecordDonationCreated("live")
	}

	expiresAt := now.Add(offlineExpiry)
	if raw := strings.TrimSpace(payment.ExpirationEstimateDate); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			expiresAt = parsed
		}
	}

	return &domain.CreateDonationResponse{
		PaymentID:   donation.PaymentID,
		PayAddress:  donation.PayAddress,
		PayAmount:   donation.PayAmount,
		PayCurrency: donation.PayCurrency,
		OrderID:     orderID,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) Reconcile(ctx context.Context, n domain.Notification) error {
	donation, err := s.repo.FindByReference(ctx, s.db, n.PaymentID, n.OrderID)
	if err != nil {
		return err
	}
	if donation == nil {
		// Webhooks never originate donations; the gateway referencing an
		// unknown order is anomalous.
		s.log.Warn("ipn for unknown donation",
			zap.String("payment_id", n.PaymentID),
			zap.String("order_id", n.OrderID),
		)
		if s.metrics != nil {
			s.metrics.RecordIPN("unknown")
		}
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	applied := n.PaymentStatus.Known() && donation.Status.CanTransition(n.PaymentStatus)

	if applied {
		donation.Status = n.PaymentStatus
		donation.ActuallyPaid = n.ActuallyPaid
		donation.UpdatedAt = now
		if n.PaymentStatus.IsPaid() && donation.PaidAt == nil {
			donation.PaidAt = &now
		}
		if err := s.repo.Update(ctx, s.db, donation); err != nil {
			return err
		}
	} else {
		s.log.Warn("ipn status not applied",
			zap.String("order_id", donation.OrderID),
			zap.String("stored_status", string(donation.Status)),
			zap.String("reported_status", string(n.PaymentStatus)),
		)
	}

	event := &domain.IPNEvent{
		ID:         s.genID.Generate(),
		OrderID:    donation.OrderID,
		PaymentID:  n.PaymentID,
		Status:     n.PaymentStatus,
		Applied:    applied,
		Payload:    datatypes.JSON(n.Raw),
		ReceivedAt: now,
	}
	if err := s.repo.InsertIPNEvent(ctx, s.db, event); err != nil {
		// The journal is advisory; reconciliation already succeeded.
		s.log.Warn("failed to journal ipn event",
			zap.String("order_id", donation.OrderID),
			zap.Error(err),
		)
	}

	s.log.Info("donation reconciled",
		zap.String("order_id", donation.OrderID),
		zap.String("status", string(donation.Status)),
		zap.Bool("applied", applied),
	)
	if s.metrics != nil {
		s.metrics.RecordIPN("ok")
	}

	return nil
}

func (s *Service) Status(ctx context.Context, orderID string) (*domain.StatusView, error) {
	donation, err := s.repo.FindByOrderID(ctx, s.db, strings.TrimSpace(orderID))
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, domain.ErrNotFound
	}

	return &domain.StatusView{
		OrderID:   donation.OrderID,
		AmountUSD: donation.AmountUSD,
		Status:    donation.Status,
		DonorName: donation.DonorName,
		CreatedAt: donation.CreatedAt,
		PaidAt:    donation.PaidAt,
	}, nil
}

func (s *Service) Recent(ctx context.Context) (*domain.RecentDonationsResponse, error) {
	donations, err := s.repo.ListPaid(ctx, s.db, recentLimit)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.PaidTotals(ctx, s.db)
	if err != nil {
		return nil, err
	}

	items := make([]domain.RecentDonation, 0, len(donations))
	for _, d := range donations {
		items = append(items, domain.RecentDonation{
			Name:    donorName(d.DonorName),
			Amount:  d.AmountUSD,
			Message: d.DonorMessage,
			Date:    d.CreatedAt,
		})
	}

	return &domain.RecentDonationsResponse{
		Donations: items,
		Stats:     stats,
	}, nil
}

func (s *Service) Currencies() []domain.Currency {
	return []domain.Currency{
		{
			Code:        domain.DefaultCurrency,
			Name:        "USDT (TRC20)",
			Network:     "TRON",
			MinAmount:   domain.MinAmountUSD,
			Description: "Tether USD on TRON network - Fast & Low fees",
		},
	}
}

// newOrderID mints a globally-unique order id: a stable prefix plus a ULID,
// which is both time-sortable and high-entropy.
func newOrderID() string {
	return "DON-" + ulid.Make().String()
}

func donorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Anonymous"
	}
	return name
}
