// internal/domain/models/payment.go
package models

// Payment statuses surfaced in the payments table. The transition
// rules between them live entirely in the backend.
const (
	PaymentPaid    = "PAID"
	PaymentPending = "PENDING"
	PaymentPartial = "PARTIAL"
	PaymentFailed  = "FAILED"
)

// Payment is a payment record as returned by GET /api/payments.
type Payment struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	User      UserRef `json:"user"`
	CourseID  string  `json:"courseId,omitempty"`
	Course    string  `json:"courseTitle,omitempty"`
	CohortID  string  `json:"cohortId,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
	Status    string  `json:"status"`
	Reference string  `json:"reference,omitempty"`
	DueDate   string  `json:"dueDate,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// UserRef is the slim user reference embedded on payments, leads,
// and change requests.
type UserRef struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// PaymentStats is the summary strip above the payments table,
// from GET /api/payments/stats.
type PaymentStats struct {
	TotalRevenue float64 `json:"totalRevenue"`
	PaidCount    int     `json:"paidCount"`
	PendingCount int     `json:"pendingCount"`
	FailedCount  int     `json:"failedCount"`
}
