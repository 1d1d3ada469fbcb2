package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/invoice"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func (r *InvoiceGormRepository) GetWorkOrderWithLines(
	ctx context.Context,
	workOrderID uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Services").
		First(&wo, workOrderID).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *InvoiceGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {

	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		// One invoice per work order, enforced by the unique index rather
		// than a read-then-write check.
		if httperr.IsUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *InvoiceGormRepository) GetInvoiceByID(
	ctx context.Context,
	id uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *InvoiceGormRepository) ApplyPayment(
	ctx context.Context,
	invoiceID uint,
	apply func(inv *models.Invoice) (*models.Payment, error),
) (*models.Payment, error) {

	var payment *models.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		p, err := apply(&inv)
		if err != nil {
			return err
		}
		payment = p

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.
			Model(&models.Invoice{}).
			Where("id = ?", inv.ID).
			Update("paid", inv.Paid).Error
	})

	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *InvoiceGormRepository) ListPayments(
	ctx context.Context,
	invoiceID uint,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
