package workorder

import (
	"context"
	"time"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type StartWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartWorkOrder {
	return &StartWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartWorkOrder) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
) (*models.WorkOrder, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	if err := domain.Start(wo, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &actorID,
		Action:   "work_order_started",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	return wo, nil
}
