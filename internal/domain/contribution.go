package domain

import "time"

// PaymentStatus is the settlement state of a contribution. Submission always
// records pending; completed/rejected is advanced by the external settlement
// process, never by this service.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRejected  PaymentStatus = "rejected"
)

// PaymentMethodMpesa is the only supported channel.
const PaymentMethodMpesa = "mpesa"

// Contribution is one submitted payment intent, in KES.
type Contribution struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	UserID        string        `gorm:"index" json:"user_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod string        `json:"payment_method"`
	PhoneNumber   string        `json:"phone_number"`
	Status        PaymentStatus `gorm:"index" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TotalCompleted sums the amounts of completed contributions. Recomputed on
// every fetch; display-only.
func TotalCompleted(list []Contribution) float64 {
	var sum float64
	for _, c := range list {
		if c.Status == PaymentCompleted {
			sum += c.Amount
		}
	}
	return sum
}
