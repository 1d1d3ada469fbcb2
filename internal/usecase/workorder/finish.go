package workorder

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
)

type FinishWorkOrderInput struct {
	WorkOrderID uint
	ActorID     uint

	// Optional; falls back to the estimate total.
	FinalCost *decimal.Decimal
}

type FinishWorkOrder struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewFinishWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
) *FinishWorkOrder {
	return &FinishWorkOrder{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

func (uc *FinishWorkOrder) Execute(
	ctx context.Context,
	in FinishWorkOrderInput,
) (*models.WorkOrder, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, in.WorkOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	if err := domain.Finish(wo, time.Now().UTC(), in.FinalCost); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.ActorID,
		Action:   "work_order_finished",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	// Pickup notice goes out after the transition is saved; delivery failure
	// never undoes the transition.
	uc.queuePickupNotice(ctx, wo)

	return wo, nil
}

func (uc *FinishWorkOrder) queuePickupNotice(ctx context.Context, wo *models.WorkOrder) {
	customer, err := uc.repo.GetCustomerByID(ctx, wo.CustomerID)
	if err != nil {
		return
	}

	body := fmt.Sprintf(
		"Hi %s, your vehicle is ready for pickup (work order #%d).",
		customer.Name, wo.ID,
	)

	if customer.Email != "" {
		uc.notify.Dispatch(notify.Message{
			Channel:   models.ChannelEmail,
			Recipient: customer.Email,
			Subject:   "Your vehicle is ready",
			Body:      body,
		})
		return
	}
	if customer.Phone != "" {
		uc.notify.Dispatch(notify.Message{
			Channel:   models.ChannelWhatsApp,
			Recipient: customer.Phone,
			Body:      body,
		})
	}
}
