package workorder

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
)

type DeleteWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteWorkOrder {
	return &DeleteWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteWorkOrder) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
) error {

	wo, err := uc.repo.GetWorkOrderByID(ctx, workOrderID)
	if err != nil {
		return httperr.ErrBusiness("work_order_not_found")
	}

	// Invoiced orders are financial history and never leave the database.
	invoiced, err := uc.repo.HasInvoice(ctx, wo.ID)
	if err != nil {
		return err
	}
	if invoiced {
		return httperr.ErrBusiness("work_order_has_invoice")
	}

	if err := uc.repo.DeleteWorkOrder(ctx, wo); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &actorID,
		Action:   "work_order_deleted",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	return nil
}
