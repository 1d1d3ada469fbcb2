package workorder

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type AttachService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAttachService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AttachService {
	return &AttachService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AttachService) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
	serviceID uint,
) (*models.WorkOrderService, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	// Price is copied now; later catalog edits must not rewrite this order.
	ws := &models.WorkOrderService{
		WorkOrderID: wo.ID,
		ServiceID:   svc.ID,
		Price:       svc.BasePrice,
	}

	if err := uc.repo.AttachService(ctx, ws); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &actorID,
		Action:   "work_order_service_attached",
		Entity:   "work_order",
		EntityID: &wo.ID,
		Metadata: map[string]string{
			"service": svc.Name,
		},
	})

	return ws, nil
}
