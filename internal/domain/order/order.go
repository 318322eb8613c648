package order

import (
	"time"

	"grocerystore/internal/domain/cart"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// CanTransition reports whether a delivery status change is allowed.
// Statuses only move forward: pending -> in-progress -> completed.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Shipping struct {
	FullName    string `json:"full_name"`
	Address     string `json:"address"`
	Area        string `json:"area"`
	PhoneNumber string `json:"phone_number"`
	PostalCode  string `json:"postal_code,omitempty"`
}

const (
	MethodCash = "cash"
	MethodCard = "card"
)

// CardDetails are validated during checkout and then discarded; they are
// never written to the order record or the database.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type Payment struct {
	Method string       `json:"method"`
	Card   *CardDetails `json:"-"`
}

// Order is the immutable snapshot produced at checkout completion. ID is
// the persisted row key and doubles as the displayed order number.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Shipping   Shipping    `json:"shipping"`
	Payment    Payment     `json:"payment"`
	Items      []cart.Line `json:"items"`
	Subtotal   float64     `json:"subtotal"`
	Tax        float64     `json:"tax"`
	Total      float64     `json:"total"`
	Status     Status      `json:"status"`
	RiderID    *int64      `json:"rider_id,omitempty"`
	PlacedAt   time.Time   `json:"placed_at"`
}
