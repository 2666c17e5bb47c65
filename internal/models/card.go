package models

import "time"

// Card is a user's digital business card as stored in Postgres.
type Card struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerEmail string    `json:"owner_email" gorm:"index"`
	Slug       string    `json:"slug" gorm:"uniqueIndex"`
	Name       string    `json:"name"`
	Company    string    `json:"company"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Services   string    `json:"services"`
	Address    string    `json:"address"`
	AvatarURL  string    `json:"avatar_url"`
	Plan       string    `json:"plan"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ParsedContact holds the best-effort structured fields extracted from one
// card image. A nil pointer means the field was absent on the card (or the
// extractor could not find it); it is never the empty string or "null".
type ParsedContact struct {
	Name     *string `json:"name,omitempty"`
	Company  *string `json:"company,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Services *string `json:"services,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// IsEmpty reports whether no field was extracted at all.
func (p ParsedContact) IsEmpty() bool {
	return p.Name == nil && p.Company == nil && p.Phone == nil &&
		p.Email == nil && p.Services == nil && p.Address == nil
}

// PaymentOrder records a payment-gateway order whose signature was
// verified by this server. Verification only; settlement status stays
// with the gateway.
type PaymentOrder struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    string    `json:"order_id" gorm:"uniqueIndex"`
	PaymentID  string    `json:"payment_id"`
	OwnerEmail string    `json:"owner_email"`
	Plan       string    `json:"plan"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
}
