package workorder

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type CloseWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCloseWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CloseWorkOrder {
	return &CloseWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CloseWorkOrder) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
) (*models.WorkOrder, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	if err := domain.Close(wo); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &actorID,
		Action:   "work_order_closed",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	return wo, nil
}
