package services

import (
	"context"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
)

// PaymentNotifier is the outbound notification collaborator surface. The
// ledger calls it fire-and-forget when a transaction becomes PAID; a failed
// notification never rolls back the status change.
type PaymentNotifier interface {
	NotifyPaymentApproved(ctx context.Context, txn domain.Transaction)
}
