package media

import (
	"context"
	"errors"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

var (
	ErrNotFound     = errors.New("media not found")
	ErrInvalidPhase = errors.New("phase must be before, during or after")
)

func ValidPhase(phase string) bool {
	switch phase {
	case models.MediaPhaseBefore, models.MediaPhaseDuring, models.MediaPhaseAfter:
		return true
	}
	return false
}

type Repository interface {
	GetWorkOrderByID(
		ctx context.Context,
		id uint,
	) (*models.WorkOrder, error)

	CreateMedia(
		ctx context.Context,
		m *models.Media,
	) error

	GetMedia(
		ctx context.Context,
		workOrderID uint,
		mediaID uint,
	) (*models.Media, error)

	ListForWorkOrder(
		ctx context.Context,
		workOrderID uint,
		phase string,
	) ([]models.Media, error)

	DeleteMedia(
		ctx context.Context,
		m *models.Media,
	) error
}
