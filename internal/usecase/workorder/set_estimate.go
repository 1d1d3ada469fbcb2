package workorder

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type SetEstimateInput struct {
	WorkOrderID uint
	ActorID     uint

	// Absent operands keep their current value.
	EstParts *decimal.Decimal
	EstLabor *decimal.Decimal
}

type SetEstimate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetEstimate(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetEstimate {
	return &SetEstimate{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetEstimate) Execute(
	ctx context.Context,
	in SetEstimateInput,
) (*models.WorkOrder, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, in.WorkOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	domain.SetEstimate(wo, in.EstParts, in.EstLabor)

	if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.ActorID,
		Action:   "estimate_set",
		Entity:   "work_order",
		EntityID: &wo.ID,
		Metadata: map[string]string{
			"est_total": wo.EstTotal.StringFixed(2),
		},
	})

	return wo, nil
}
