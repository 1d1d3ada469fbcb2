package invoice

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/invoice"
	workorderdomain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInvoiceInput struct {
	WorkOrderID uint
	ActorID     uint

	Discount decimal.Decimal
}

// ======================================================
// USE CASE
// ======================================================

type CreateInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	taxRate decimal.Decimal
}

func NewCreateInvoice(
	repo domain.Repository,
	audit *audit.Dispatcher,
	taxRate decimal.Decimal,
) *CreateInvoice {
	return &CreateInvoice{
		repo:    repo,
		audit:   audit,
		taxRate: taxRate,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateInvoice) Execute(
	ctx context.Context,
	in CreateInvoiceInput,
) (*models.Invoice, error) {

	wo, err := uc.repo.GetWorkOrderWithLines(ctx, in.WorkOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	// Billing starts once the work is done; earlier states have no final
	// line set to bill against.
	switch workorderdomain.Status(wo.Status) {
	case workorderdomain.StatusDone, workorderdomain.StatusClosed:
	default:
		return nil, httperr.ErrBusiness("work_order_not_done")
	}

	subtotal := domain.Subtotal(wo.Items, wo.Services)

	// Orders billed on a frozen final cost rather than line items.
	if subtotal.IsZero() && wo.FinalCost != nil {
		subtotal = *wo.FinalCost
	}

	inv, err := domain.Compute(subtotal, in.Discount, uc.taxRate)
	if err != nil {
		return nil, err
	}
	inv.WorkOrderID = wo.ID

	if err := uc.repo.CreateInvoice(ctx, &inv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.ActorID,
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]string{
			"work_order_id": strconv.FormatUint(uint64(wo.ID), 10),
			"total":         inv.Total.StringFixed(2),
		},
	})

	return &inv, nil
}
