package workorder

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateWorkOrderInput struct {
	CustomerID uint
	VehicleID  uint
	CreatedBy  uint

	Complaint string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateWorkOrder {
	return &CreateWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateWorkOrder) Execute(
	ctx context.Context,
	in CreateWorkOrderInput,
) (*models.WorkOrder, error) {

	if _, err := uc.repo.GetCustomerByID(ctx, in.CustomerID); err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	// The vehicle must belong to the customer on the order.
	if _, err := uc.repo.GetVehicleForCustomer(ctx, in.VehicleID, in.CustomerID); err != nil {
		return nil, httperr.ErrBusiness("vehicle_not_found")
	}

	wo := &models.WorkOrder{
		CustomerID: in.CustomerID,
		VehicleID:  in.VehicleID,
		CreatedBy:  in.CreatedBy,
		Status:     string(domain.InitialStatus()),
		Complaint:  in.Complaint,
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.CreatedBy,
		Action:   "work_order_created",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	return wo, nil
}
