package nowpayments_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goalline/wc26/internal/donation/nowpayments"
)

func TestCreatePayment(t *testing.T) {
	var gotAPIKey string
	var gotBody nowpayments.CreatePaymentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payment" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAPIKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"payment_id": 4945313421,
			"payment_status": "waiting",
			"pay_address": "TTestAddress",
			"pay_amount": 24.95,
			"pay_currency": "usdttrc20",
			"invoice_url": "https://nowpayments.io/payment/?iid=5678"
		}`))
	}))
	defer srv.Close()

	client := nowpayments.NewClient(srv.URL, "test-key")
	resp, err := client.CreatePayment(context.Background(), nowpayments.CreatePaymentRequest{
		PriceAmount:   25,
		PriceCurrency: "usd",
		PayCurrency:   "usdttrc20",
		OrderID:       "DON-TEST",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	if gotAPIKey != "test-key" {
		t.Fatalf("x-api-key = %q", gotAPIKey)
	}
	if gotBody.OrderID != "DON-TEST" {
		t.Fatalf("order_id = %q", gotBody.OrderID)
	}
	if resp.PaymentID.String() != "4945313421" {
		t.Fatalf("payment_id = %q", resp.PaymentID.String())
	}
	if resp.PayAddress != "TTestAddress" {
		t.Fatalf("pay_address = %q", resp.PayAddress)
	}
}

func TestCreatePaymentSurfacesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Invalid api key"}`))
	}))
	defer srv.Close()

	client := nowpayments.NewClient(srv.URL, "bad-key")
	_, err := client.CreatePayment(context.Background(), nowpayments.CreatePaymentRequest{PriceAmount: 10})
	if err == nil {
		t.Fatal("expected error")
	}

	var gatewayErr *nowpayments.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("error %T is not a GatewayError", err)
	}
	if gatewayErr.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", gatewayErr.StatusCode)
	}
	if gatewayErr.Message != "Invalid api key" {
		t.Fatalf("message = %q", gatewayErr.Message)
	}
}
