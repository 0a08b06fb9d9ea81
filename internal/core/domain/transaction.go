package domain

import "github.com/shopspring/decimal"

// PaymentMode indicates how the student paid.
type PaymentMode string

const (
	PaymentOnline  PaymentMode = "ONLINE"
	PaymentOffline PaymentMode = "OFFLINE"
)

// TransactionStatus tracks the approval workflow of a fee transaction.
// PENDING_APPROVAL is the only state reachable at creation; PAID and
// REJECTED are terminal.
type TransactionStatus string

const (
	StatusPendingApproval TransactionStatus = "PENDING_APPROVAL"
	StatusPaid            TransactionStatus = "PAID"
	StatusRejected        TransactionStatus = "REJECTED"
)

// IsTerminal reports whether no further status transitions are legal.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusRejected
}

// Transaction is a fee payment record for a student's course enrollment.
// Amount, Discount and NetPayable are computed once at creation from the
// course terms current at that moment and are immutable thereafter.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	BillNo          string            `json:"billNo"`        // Sequential, unique, never reused
	StudentID       string            `json:"studentID"`     // FK -> User.userID
	CourseID        string            `json:"courseID"`      // FK -> Course.courseID
	Months          int               `json:"months"`        // Positive, <= course duration at creation
	Amount          decimal.Decimal   `json:"amount"`        // months x feePerMonth
	Discount        decimal.Decimal   `json:"discount"`      // Non-zero only for full-duration payments
	NetPayable      decimal.Decimal   `json:"netPayable"`    // amount - discount
	ModeOfPayment   PaymentMode       `json:"modeOfPayment"`
	PaymentProofRef *string           `json:"paymentProofRef,omitempty"` // Required for ONLINE
	Status          TransactionStatus `json:"status"`
	AuditFields
}
