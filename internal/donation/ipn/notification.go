package ipn

import (
	"strconv"

	"github.com/goalline/wc26/internal/donation/domain"
)

// ParseNotification projects a verified payload into the typed notification.
// The gateway is loose with scalar types; payment_id may arrive as a JSON
// number or a string, actually_paid as either of those too.
func ParseNotification(payload map[string]any, raw []byte) domain.Notification {
	return domain.Notification{
		PaymentID:     asString(payload["payment_id"]),
		OrderID:       asString(payload["order_id"]),
		PaymentStatus: domain.Status(asString(payload["payment_status"])),
		ActuallyPaid:  asFloat(payload["actually_paid"]),
		Raw:           raw,
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}
