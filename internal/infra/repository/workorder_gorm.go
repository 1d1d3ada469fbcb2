package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type WorkOrderGormRepository struct {
	db *gorm.DB
}

func NewWorkOrderGormRepository(db *gorm.DB) *WorkOrderGormRepository {
	return &WorkOrderGormRepository{db: db}
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *WorkOrderGormRepository) GetCustomerByID(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *WorkOrderGormRepository) GetVehicleForCustomer(
	ctx context.Context,
	vehicleID uint,
	customerID uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", vehicleID, customerID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// --------------------------------------------------
// Work order
// --------------------------------------------------

func (r *WorkOrderGormRepository) CreateWorkOrder(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

func (r *WorkOrderGormRepository) GetWorkOrderByID(
	ctx context.Context,
	id uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Services").
		First(&wo, id).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderGormRepository) UpdateWorkOrder(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Services", "Media").
		Save(wo).Error
}

// --------------------------------------------------
// Billable lines
// --------------------------------------------------

func (r *WorkOrderGormRepository) AddItem(
	ctx context.Context,
	item *models.WorkOrderItem,
) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *WorkOrderGormRepository) RemoveItem(
	ctx context.Context,
	workOrderID uint,
	itemID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND work_order_id = ?", itemID, workOrderID).
		Delete(&models.WorkOrderItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WorkOrderGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *WorkOrderGormRepository) AttachService(
	ctx context.Context,
	ws *models.WorkOrderService,
) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

// --------------------------------------------------
// Deletion policy
// --------------------------------------------------

func (r *WorkOrderGormRepository) HasInvoice(
	ctx context.Context,
	workOrderID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("work_order_id = ?", workOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *WorkOrderGormRepository) DeleteWorkOrder(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).Delete(wo).Error
}

// Compile-time check
var _ domain.Repository = (*WorkOrderGormRepository)(nil)
