package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type ApprovalGormRepository struct {
	db *gorm.DB
}

func NewApprovalGormRepository(db *gorm.DB) *ApprovalGormRepository {
	return &ApprovalGormRepository{db: db}
}

func (r *ApprovalGormRepository) GetWorkOrderByID(
	ctx context.Context,
	id uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).First(&wo, id).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *ApprovalGormRepository) GetCustomerByID(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// --------------------------------------------------
// Issue
// --------------------------------------------------

func (r *ApprovalGormRepository) IssueRequest(
	ctx context.Context,
	ar *models.ApprovalRequest,
	wo *models.WorkOrder,
) ([]models.ApprovalRequest, error) {

	var superseded []models.ApprovalRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"work_order_id = ? AND is_used = false AND expires_at > ?",
				ar.WorkOrderID, now,
			).
			Find(&superseded).Error; err != nil {
			return err
		}

		// Older pending links die when a fresh one goes out; decision stays
		// empty so a superseded row never reads as a customer choice.
		if len(superseded) > 0 {
			ids := make([]uint, 0, len(superseded))
			for _, prev := range superseded {
				ids = append(ids, prev.ID)
			}
			if err := tx.
				Model(&models.ApprovalRequest{}).
				Where("id IN ?", ids).
				Update("is_used", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(ar).Error; err != nil {
			return err
		}

		return tx.
			Omit("Items", "Services", "Media").
			Save(wo).Error
	})

	if err != nil {
		return nil, err
	}
	return superseded, nil
}

// --------------------------------------------------
// Token reads
// --------------------------------------------------

func (r *ApprovalGormRepository) GetByToken(
	ctx context.Context,
	token string,
) (*models.ApprovalRequest, error) {

	var ar models.ApprovalRequest
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&ar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return &ar, nil
}

// --------------------------------------------------
// Consume
// --------------------------------------------------

func (r *ApprovalGormRepository) Consume(
	ctx context.Context,
	token string,
	apply func(ar *models.ApprovalRequest, wo *models.WorkOrder) error,
) (*models.ApprovalRequest, *models.WorkOrder, error) {

	var ar models.ApprovalRequest
	var wo models.WorkOrder

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&ar).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&wo, ar.WorkOrderID).Error; err != nil {
			return err
		}

		if err := apply(&ar, &wo); err != nil {
			return err
		}

		// The is_used = false gate makes the token single-use even if a second
		// consumer slipped past the row lock.
		res := tx.
			Model(&models.ApprovalRequest{}).
			Where("id = ? AND is_used = false", ar.ID).
			Updates(map[string]interface{}{
				"is_used":    true,
				"decision":   ar.Decision,
				"reason":     ar.Reason,
				"decided_at": ar.DecidedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrTokenAlreadyUsed
		}

		return tx.
			Omit("Items", "Services", "Media").
			Save(&wo).Error
	})

	if err != nil {
		return nil, nil, err
	}
	ar.IsUsed = true
	return &ar, &wo, nil
}

// --------------------------------------------------
// Token-scoped media
// --------------------------------------------------

func (r *ApprovalGormRepository) ListMediaForWorkOrder(
	ctx context.Context,
	workOrderID uint,
	phase string,
) ([]models.Media, error) {

	q := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID)

	if phase != "" {
		q = q.Where("phase = ?", phase)
	}

	var media []models.Media
	if err := q.Order("created_at ASC").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// Compile-time check
var _ domain.Repository = (*ApprovalGormRepository)(nil)
