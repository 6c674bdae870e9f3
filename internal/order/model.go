package order

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

type Order struct {
	ID        uint
	Amount    float64
	Currency  string
	Email     string
	Phone     string
	Status    Status
	CreatedAt time.Time
}

// Payment is one checkout attempt against an order. Hash is unique per
// attempt and never reused; it is the correlation key between the outbound
// checkout session and the inbound notification.
type Payment struct {
	ID        uint
	OrderID   uint
	Hash      string
	Amount    float64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
