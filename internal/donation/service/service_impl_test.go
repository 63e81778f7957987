package service_test

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/goalline/wc26/internal/config"
	"github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/internal/donation/nowpayments"
	"github.com/goalline/wc26/internal/donation/repository"
	"github.com/goalline/wc26/internal/donation/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeGateway struct {
	lastRequest nowpayments.CreatePaymentRequest
	response    *nowpayments.CreatePaymentResponse
	err         error
}

func (f *fakeGateway) CreatePayment(ctx context.Context, req nowpayments.CreatePaymentRequest) (*nowpayments.CreatePaymentResponse, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(&domain.Donation{}, &domain.IPNEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOfflineService(t *testing.T, db *gorm.DB) domain.Service {
	t.Helper()

	node, err := snowflake.NewNode(10)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	return service.New(service.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Cfg: config.Config{
			DonationOfflineMode: true,
			DonationWallet:      "TTestWalletAddress",
		},
		Repo: repository.Provide(),
	})
}

func TestCreateRejectsOutOfRangeAmounts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	for _, amount := range []float64{0, 0.99, 100.01, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: amount})
		if err != domain.ErrInvalidAmount {
			t.Fatalf("amount %v: want ErrInvalidAmount, got %v", amount, err)
		}
	}

	var count int64
	if err := db.Model(&domain.Donation{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected creates persisted %d records", count)
	}
}

func TestCreateAcceptsBoundaryAmounts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	for _, amount := range []float64{1, 100} {
		resp, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: amount})
		if err != nil {
			t.Fatalf("amount %v: %v", amount, err)
		}
		if resp.PayAmount != amount {
			t.Fatalf("pay_amount = %v, want %v", resp.PayAmount, amount)
		}
	}
}

func TestCreateOfflineShape(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	before := time.Now().UTC()
	resp, err := svc.Create(ctx, domain.CreateDonationRequest{
		Amount:    25,
		DonorName: "  ",
		Message:   "good luck",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(resp.PaymentID, "demo_") {
		t.Fatalf("payment_id %q lacks demo_ prefix", resp.PaymentID)
	}
	if !strings.HasPrefix(resp.OrderID, "DON-") {
		t.Fatalf("order_id %q lacks DON- prefix", resp.OrderID)
	}
	if resp.PayCurrency != domain.DefaultCurrency {
		t.Fatalf("pay_currency = %q", resp.PayCurrency)
	}
	if resp.PayAddress != "TTestWalletAddress" {
		t.Fatalf("pay_address = %q", resp.PayAddress)
	}
	if !resp.OfflineMode {
		t.Fatal("demo_mode flag not set")
	}

	expiry := resp.ExpiresAt.Sub(before)
	if expiry < 59*time.Minute || expiry > 61*time.Minute {
		t.Fatalf("expires_at %v from creation, want about an hour", expiry)
	}

	var stored domain.Donation
	if err := db.Where("order_id = ?", resp.OrderID).First(&stored).Error; err != nil {
		t.Fatalf("load stored: %v", err)
	}
	if stored.Status != domain.StatusWaiting {
		t.Fatalf("status = %q, want waiting", stored.Status)
	}
	if stored.DonorName != "Anonymous" {
		t.Fatalf("donor_name = %q, want Anonymous fallback", stored.DonorName)
	}
}

func TestCreateOrderIDsUnique(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		resp, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: 5})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if _, dup := seen[resp.OrderID]; dup {
			t.Fatalf("duplicate order_id %q", resp.OrderID)
		}
		seen[resp.OrderID] = struct{}{}
	}
}

func TestCreateLiveCallsGateway(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(11)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	gateway := &fakeGateway{
		response: &nowpayments.CreatePaymentResponse{
			PaymentID:     "4945313421",
			PaymentStatus: "waiting",
			PayAddress:    "TLiveAddress",
			PayAmount:     24.95,
			PayCurrency:   "usdttrc20",
			InvoiceURL:    "https://nowpayments.io/payment/?iid=123",
		},
	}

	svc := service.New(service.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Cfg:     config.Config{DonationOfflineMode: false},
		Repo:    repository.Provide(),
		Gateway: gateway,
	})

	resp, err := svc.Create(ctx, domain.CreateDonationRequest{
		Amount: 25,
		Origin: "https://worldcup.example",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if gateway.lastRequest.IPNCallbackURL != "https://worldcup.example/donate/ipn" {
		t.Fatalf("ipn_callback_url = %q", gateway.lastRequest.IPNCallbackURL)
	}
	if gateway.lastRequest.PriceCurrency != "usd" {
		t.Fatalf("price_currency = %q", gateway.lastRequest.PriceCurrency)
	}
	if resp.PaymentID != "4945313421" {
		t.Fatalf("payment_id = %q", resp.PaymentID)
	}
	if resp.PayAddress != "TLiveAddress" {
		t.Fatalf("pay_address = %q", resp.PayAddress)
	}

	var stored domain.Donation
	if err := db.Where("order_id = ?", resp.OrderID).First(&stored).Error; err != nil {
		t.Fatalf("load stored: %v", err)
	}
	if stored.InvoiceURL != "https://nowpayments.io/payment/?iid=123" {
		t.Fatalf("invoice_url = %q", stored.InvoiceURL)
	}
}

func TestCreateGatewayFailurePersistsNothing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	node, err := snowflake.NewNode(12)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := service.New(service.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Cfg:     config.Config{DonationOfflineMode: false},
		Repo:    repository.Provide(),
		Gateway: &fakeGateway{err: &nowpayments.GatewayError{StatusCode: 403, Message: "invalid api key"}},
	})

	if _, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: 10}); err == nil {
		t.Fatal("expected gateway error")
	}

	var count int64
	if err := db.Model(&domain.Donation{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed create persisted %d records", count)
	}
}

func TestReconcileUnknownReferenceNeverCreates(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	err := svc.Reconcile(ctx, domain.Notification{
		PaymentID:     "999",
		OrderID:       "DON-UNKNOWN",
		PaymentStatus: domain.StatusFinished,
	})
	if err != domain.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	var count int64
	if err := db.Model(&domain.Donation{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("reconcile created %d records", count)
	}
}

func TestReconcileLifecycle(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	created, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: 20})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reconcile := func(status domain.Status, actuallyPaid float64) {
		t.Helper()
		err := svc.Reconcile(ctx, domain.Notification{
			OrderID:       created.OrderID,
			PaymentStatus: status,
			ActuallyPaid:  actuallyPaid,
			Raw:           []byte(`{}`),
		})
		if err != nil {
			t.Fatalf("reconcile %s: %v", status, err)
		}
	}
	load := func() domain.Donation {
		t.Helper()
		var d domain.Donation
		if err := db.Where("order_id = ?", created.OrderID).First(&d).Error; err != nil {
			t.Fatalf("load: %v", err)
		}
		return d
	}

	reconcile(domain.StatusConfirming, 0)
	if got := load(); got.Status != domain.StatusConfirming || got.PaidAt != nil {
		t.Fatalf("after confirming: status=%q paid_at=%v", got.Status, got.PaidAt)
	}

	reconcile(domain.StatusFinished, 19.99)
	first := load()
	if first.Status != domain.StatusFinished {
		t.Fatalf("status = %q, want finished", first.Status)
	}
	if first.PaidAt == nil {
		t.Fatal("paid_at not set on finished")
	}
	if first.ActuallyPaid != 19.99 {
		t.Fatalf("actually_paid = %v", first.ActuallyPaid)
	}

	// Redelivery of the same terminal status must not move paid_at.
	reconcile(domain.StatusFinished, 19.99)
	replayed := load()
	if replayed.PaidAt == nil || !replayed.PaidAt.Equal(*first.PaidAt) {
		t.Fatalf("paid_at moved on replay: %v -> %v", first.PaidAt, replayed.PaidAt)
	}

	// A late lower-rank status is acknowledged but never applied.
	reconcile(domain.StatusWaiting, 0)
	if got := load(); got.Status != domain.StatusFinished {
		t.Fatalf("late waiting regressed status to %q", got.Status)
	}
}

func TestReconcileJournalsEvents(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	created, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: 20})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	steps := []struct {
		status      domain.Status
		wantApplied bool
	}{
		{domain.StatusConfirming, true},
		{domain.StatusFinished, true},
		{domain.StatusWaiting, false},
	}
	for _, step := range steps {
		err := svc.Reconcile(ctx, domain.Notification{
			OrderID:       created.OrderID,
			PaymentStatus: step.status,
			Raw:           []byte(`{"payment_status":"` + string(step.status) + `"}`),
		})
		if err != nil {
			t.Fatalf("reconcile %s: %v", step.status, err)
		}
	}

	var events []domain.IPNEvent
	if err := db.Where("order_id = ?", created.OrderID).Order("id asc").Find(&events).Error; err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != len(steps) {
		t.Fatalf("journaled %d events, want %d", len(events), len(steps))
	}
	for i, step := range steps {
		if events[i].Status != step.status || events[i].Applied != step.wantApplied {
			t.Fatalf("event %d: status=%q applied=%v, want %q/%v",
				i, events[i].Status, events[i].Applied, step.status, step.wantApplied)
		}
	}
}

func TestRecentReturnsPaidOnlyWithTotals(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	seed := []struct {
		amount float64
		status domain.Status
	}{
		{10, domain.StatusFinished},
		{5, domain.StatusConfirmed},
		{7, domain.StatusWaiting},
		{3, domain.StatusFailed},
	}
	for _, row := range seed {
		created, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: row.amount})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if row.status == domain.StatusWaiting {
			continue
		}
		err = svc.Reconcile(ctx, domain.Notification{
			OrderID:       created.OrderID,
			PaymentStatus: row.status,
			Raw:           []byte(`{}`),
		})
		if err != nil {
			t.Fatalf("reconcile: %v", err)
		}
	}

	resp, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}

	if len(resp.Donations) != 2 {
		t.Fatalf("recent listed %d donations, want 2", len(resp.Donations))
	}
	for _, d := range resp.Donations {
		if d.Name != "Anonymous" {
			t.Fatalf("name = %q, want Anonymous fallback", d.Name)
		}
	}
	if resp.Stats.TotalAmount != 15 {
		t.Fatalf("total_amount = %v, want 15", resp.Stats.TotalAmount)
	}
	if resp.Stats.TotalDonations != 2 {
		t.Fatalf("total_donations = %v, want 2", resp.Stats.TotalDonations)
	}
}

func TestRecentCapsAtTen(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	for i := 0; i < 12; i++ {
		created, err := svc.Create(ctx, domain.CreateDonationRequest{Amount: 2})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		err = svc.Reconcile(ctx, domain.Notification{
			OrderID:       created.OrderID,
			PaymentStatus: domain.StatusFinished,
			Raw:           []byte(`{}`),
		})
		if err != nil {
			t.Fatalf("reconcile: %v", err)
		}
	}

	resp, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(resp.Donations) != 10 {
		t.Fatalf("recent listed %d donations, want 10", len(resp.Donations))
	}
	if resp.Stats.TotalDonations != 12 {
		t.Fatalf("total_donations = %v, want 12", resp.Stats.TotalDonations)
	}
}

func TestStatusUnknownOrder(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newOfflineService(t, db)

	if _, err := svc.Status(ctx, "DON-MISSING"); err != domain.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
