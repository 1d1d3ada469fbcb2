package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/media"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type MediaGormRepository struct {
	db *gorm.DB
}

func NewMediaGormRepository(db *gorm.DB) *MediaGormRepository {
	return &MediaGormRepository{db: db}
}

func (r *MediaGormRepository) GetWorkOrderByID(
	ctx context.Context,
	id uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).First(&wo, id).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *MediaGormRepository) CreateMedia(
	ctx context.Context,
	m *models.Media,
) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MediaGormRepository) GetMedia(
	ctx context.Context,
	workOrderID uint,
	mediaID uint,
) (*models.Media, error) {

	var m models.Media
	if err := r.db.WithContext(ctx).
		Where("id = ? AND work_order_id = ?", mediaID, workOrderID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MediaGormRepository) ListForWorkOrder(
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

func (r *MediaGormRepository) DeleteMedia(
	ctx context.Context,
	m *models.Media,
) error {
	return r.db.WithContext(ctx).Delete(m).Error
}

// Compile-time check
var _ domain.Repository = (*MediaGormRepository)(nil)
