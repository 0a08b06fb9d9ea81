package dto

import (
	"time"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for a fee payment request.
// The paying student comes from the authenticated context. PaymentProofRef is
// the opaque reference returned by the upload collaborator and is required for
// ONLINE payments.
type CreateTransactionRequest struct {
	CourseID        string             `json:"courseID" binding:"required,uuid"`
	Months          int                `json:"months" binding:"required,min=1"`
	ModeOfPayment   domain.PaymentMode `json:"modeOfPayment" binding:"required,oneof=ONLINE OFFLINE"`
	PaymentProofRef *string            `json:"paymentProofRef,omitempty"`
}

// UpdateTransactionStatusRequest defines the payload for the admin approval decision.
type UpdateTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required,oneof=PAID REJECTED"`
}

// ListTransactionsParams carries the optional filters and pagination controls
// for transaction listings.
type ListTransactionsParams struct {
	StudentID *string                   `form:"studentID" binding:"omitempty,uuid"`
	CourseID  *string                   `form:"courseID" binding:"omitempty,uuid"`
	Status    *domain.TransactionStatus `form:"status" binding:"omitempty,oneof=PENDING_APPROVAL PAID REJECTED"`
	Limit     int                       `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string                   `form:"nextToken"`
}

// TransactionResponse defines the data returned for a fee transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	BillNo          string                   `json:"billNo"`
	StudentID       string                   `json:"studentID"`
	CourseID        string                   `json:"courseID"`
	Months          int                      `json:"months"`
	Amount          decimal.Decimal          `json:"amount"`
	Discount        decimal.Decimal          `json:"discount"`
	NetPayable      decimal.Decimal          `json:"netPayable"`
	ModeOfPayment   domain.PaymentMode       `json:"modeOfPayment"`
	PaymentProofRef *string                  `json:"paymentProofRef,omitempty"`
	Status          domain.TransactionStatus `json:"status"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// ListTransactionsResponse is one page of transactions plus the cursor for the
// next page, nil when the listing is exhausted.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		BillNo:          t.BillNo,
		StudentID:       t.StudentID,
		CourseID:        t.CourseID,
		Months:          t.Months,
		Amount:          t.Amount,
		Discount:        t.Discount,
		NetPayable:      t.NetPayable,
		ModeOfPayment:   t.ModeOfPayment,
		PaymentProofRef: t.PaymentProofRef,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(&t)
	}
	return responses
}
