package mapping

import (
	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	"github.com/edupulse/institute_portal_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		BillNo:          d.BillNo,
		StudentID:       d.StudentID,
		CourseID:        d.CourseID,
		Months:          d.Months,
		Amount:          d.Amount,
		Discount:        d.Discount,
		NetPayable:      d.NetPayable,
		ModeOfPayment:   models.PaymentMode(d.ModeOfPayment),
		PaymentProofRef: d.PaymentProofRef,
		Status:          models.TransactionStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		BillNo:          m.BillNo,
		StudentID:       m.StudentID,
		CourseID:        m.CourseID,
		Months:          m.Months,
		Amount:          m.Amount,
		Discount:        m.Discount,
		NetPayable:      m.NetPayable,
		ModeOfPayment:   domain.PaymentMode(m.ModeOfPayment),
		PaymentProofRef: m.PaymentProofRef,
		Status:          domain.TransactionStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactions converts a slice of model Transactions
func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
