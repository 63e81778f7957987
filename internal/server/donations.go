package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	donationdomain "github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/internal/donation/ipn"
	"github.com/goalline/wc26/internal/donation/nowpayments"
	"go.uber.org/zap"
)

// Donation endpoints keep the success-envelope response shape the public
// widget consumes: {"success": bool, ...} rather than the error middleware's
// envelope.

const ipnSignatureHeader = "x-nowpayments-sig"

type createDonationBody struct {
	// Amount tolerates both JSON numbers and numeric strings.
	Amount     json.Number `json:"amount"`
	DonorName  string      `json:"donor_name"`
	DonorEmail string      `json:"donor_email"`
	Message    string      `json:"message"`
}

type createDonationEnvelope struct {
	Success bool `json:"success"`
	*donationdomain.CreateDonationResponse
}

func (s *Server) CreateDonation(c *gin.Context) {
	var body createDonationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Amount must be between 1 and 100 USD",
		})
		return
	}

	amount, err := strconv.ParseFloat(body.Amount.String(), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Amount must be between 1 and 100 USD",
		})
		return
	}

	resp, err := s.donationSvc.Create(c.Request.Context(), donationdomain.CreateDonationRequest{
		Amount:     amount,
		DonorName:  body.DonorName,
		DonorEmail: body.DonorEmail,
		Message:    body.Message,
		Origin:     requestOrigin(c),
	})
	if err != nil {
		if errors.Is(err, donationdomain.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Amount must be between 1 and 100 USD",
			})
			return
		}

		var gatewayErr *nowpayments.GatewayError
		if errors.As(err, &gatewayErr) && gatewayErr.Message != "" {
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"error":   gatewayErr.Message,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create payment",
		})
		return
	}

	c.JSON(http.StatusOK, createDonationEnvelope{
		Success:                true,
		CreateDonationResponse: resp,
	})
}

func (s *Server) HandleDonationIPN(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	signature := strings.TrimSpace(c.GetHeader(ipnSignatureHeader))
	if signature != "" {
		if !s.verifier.Verify(payload, signature) {
			s.log.Warn("ipn signature mismatch",
				zap.String("order_id", stringField(payload, "order_id")),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
			return
		}
	} else {
		// Some gateway retry paths omit the signature header; accept but
		// record the anomaly.
		s.log.Warn("ipn received without signature",
			zap.String("order_id", stringField(payload, "order_id")),
		)
	}

	notification := ipn.ParseNotification(payload, raw)
	if err := s.donationSvc.Reconcile(c.Request.Context(), notification); err != nil {
		if errors.Is(err, donationdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "IPN processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) GetDonationStatus(c *gin.Context) {
	view, err := s.donationSvc.Status(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if errors.Is(err, donationdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Donation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get donation status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"donation": view,
	})
}

func (s *Server) ListRecentDonations(c *gin.Context) {
	resp, err := s.donationSvc.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get donations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"donations": resp.Donations,
		"stats":     resp.Stats,
	})
}

func (s *Server) ListDonationCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"currencies": s.donationSvc.Currencies(),
	})
}

// requestOrigin reconstructs the scheme://host the client reached us on,
// honoring proxy forwarding headers.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
