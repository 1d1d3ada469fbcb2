package workorder

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type Repository interface {
	// -------- Collaborators --------
	GetCustomerByID(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	GetVehicleForCustomer(
		ctx context.Context,
		vehicleID uint,
		customerID uint,
	) (*models.Vehicle, error)

	// -------- Work order --------
	CreateWorkOrder(
		ctx context.Context,
		wo *models.WorkOrder,
	) error

	GetWorkOrderByID(
		ctx context.Context,
		id uint,
	) (*models.WorkOrder, error)

	UpdateWorkOrder(
		ctx context.Context,
		wo *models.WorkOrder,
	) error

	// -------- Billable lines --------
	AddItem(
		ctx context.Context,
		item *models.WorkOrderItem,
	) error

	RemoveItem(
		ctx context.Context,
		workOrderID uint,
		itemID uint,
	) error

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	AttachService(
		ctx context.Context,
		ws *models.WorkOrderService,
	) error

	// -------- Deletion policy --------
	HasInvoice(
		ctx context.Context,
		workOrderID uint,
	) (bool, error)

	DeleteWorkOrder(
		ctx context.Context,
		wo *models.WorkOrder,
	) error
}
