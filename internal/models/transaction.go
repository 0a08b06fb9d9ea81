package models

import "github.com/shopspring/decimal"

// PaymentMode mirrors the payment_mode enum in the database.
type PaymentMode string

const (
	PaymentOnline  PaymentMode = "ONLINE"
	PaymentOffline PaymentMode = "OFFLINE"
)

// TransactionStatus mirrors the transaction_status enum in the database.
type TransactionStatus string

const (
	StatusPendingApproval TransactionStatus = "PENDING_APPROVAL"
	StatusPaid            TransactionStatus = "PAID"
	StatusRejected        TransactionStatus = "REJECTED"
)

// Transaction maps a row of the transactions table.
// bill_no carries a unique index; amount, discount and net_payable are
// written once at insert and never updated.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	BillNo          string            `json:"billNo"`
	StudentID       string            `json:"studentID"`
	CourseID        string            `json:"courseID"`
	Months          int               `json:"months"`
	Amount          decimal.Decimal   `json:"amount"`
	Discount        decimal.Decimal   `json:"discount"`
	NetPayable      decimal.Decimal   `json:"netPayable"`
	ModeOfPayment   PaymentMode       `json:"modeOfPayment"`
	PaymentProofRef *string           `json:"paymentProofRef,omitempty"`
	Status          TransactionStatus `json:"status"`
	AuditFields
}
