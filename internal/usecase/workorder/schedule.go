package workorder

import (
	"context"
	"time"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type ScheduleWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewScheduleWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ScheduleWorkOrder {
	return &ScheduleWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ScheduleWorkOrder) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
	at time.Time,
) (*models.WorkOrder, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	if at.Before(time.Now().UTC()) {
		return nil, httperr.ErrBusiness("scheduled_in_the_past")
	}

	domain.Schedule(wo, at.UTC())

	if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &actorID,
		Action:   "work_order_scheduled",
		Entity:   "work_order",
		EntityID: &wo.ID,
		Metadata: map[string]string{
			"scheduled_at": wo.ScheduledAt.Format(time.RFC3339),
		},
	})

	return wo, nil
}
