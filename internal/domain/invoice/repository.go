package invoice

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type Repository interface {
	// GetWorkOrderWithLines loads the work order with its billable lines
	// (items and attached services) preloaded.
	GetWorkOrderWithLines(
		ctx context.Context,
		workOrderID uint,
	) (*models.WorkOrder, error)

	// CreateInvoice inserts the invoice; a duplicate work_order_id surfaces
	// as ErrAlreadyExists (unique index, not a racy existence check).
	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	GetInvoiceByID(
		ctx context.Context,
		id uint,
	) (*models.Invoice, error)

	// ApplyPayment runs apply inside one transaction with the invoice row
	// locked; the payment insert and the paid increment commit together or
	// not at all.
	ApplyPayment(
		ctx context.Context,
		invoiceID uint,
		apply func(inv *models.Invoice) (*models.Payment, error),
	) (*models.Payment, error)

	ListPayments(
		ctx context.Context,
		invoiceID uint,
	) ([]models.Payment, error)
}
