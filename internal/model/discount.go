package model

import "time"

// DiscountType enumerates how a discount code reduces a subtotal.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Valid reports whether the discount type is one of the known variants.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// DiscountCode represents a promotional code in the system.
// Codes are stored normalized (trimmed, uppercase) and looked up the same way.
type DiscountCode struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int          `json:"discount_value"` // percent (0-100) or minor-currency amount
	MinAmount     int          `json:"min_amount"`
	MaxUses       *int         `json:"max_uses"`
	UsedCount     int          `json:"used_count"`
	ExpiresAt     *time.Time   `json:"expires_at"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"-"` // Not exposed in API
}

// DiscountResponse is the API response DTO for GET /api/discount/:code.
// DiscountAmount is the amount the code would take off the subtotal passed
// by the caller; zero when no subtotal was supplied.
type DiscountResponse struct {
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  int          `json:"discount_value"`
	MinAmount      int          `json:"min_amount"`
	DiscountAmount int          `json:"discount_amount"`
}
