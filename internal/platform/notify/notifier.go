package notify

import (
	"context"
	"log/slog"

	"github.com/edupulse/institute_portal_backend/internal/core/domain"
	portssvc "github.com/edupulse/institute_portal_backend/internal/core/ports/services"
	"github.com/edupulse/institute_portal_backend/internal/middleware"
	"github.com/edupulse/institute_portal_backend/internal/utils"
)

// paymentNotifier informs the outside world when a transaction is approved.
// Delivery is best-effort: the ledger never waits on or rolls back for it.
// Today it emits a structured log line plus an analytics event; the email
// collaborator consumes the same event stream.
type paymentNotifier struct {
	posthogClient *utils.PosthogClientWrapper
}

// NewPaymentNotifier creates a PaymentNotifier backed by the analytics client.
func NewPaymentNotifier(posthogClient *utils.PosthogClientWrapper) portssvc.PaymentNotifier {
	return &paymentNotifier{posthogClient: posthogClient}
}

var _ portssvc.PaymentNotifier = (*paymentNotifier)(nil)

func (n *paymentNotifier) NotifyPaymentApproved(ctx context.Context, txn domain.Transaction) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Payment approved notification",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("bill_no", txn.BillNo),
		slog.String("student_id", txn.StudentID),
		slog.String("net_payable", utils.FormatAmount(txn.NetPayable)),
	)

	if n.posthogClient != nil {
		n.posthogClient.Enqueue(txn.StudentID, "payment_approved", map[string]any{
			"bill_no":     txn.BillNo,
			"course_id":   txn.CourseID,
			"months":      txn.Months,
			"net_payable": utils.FormatAmount(txn.NetPayable),
		})
	}
}
