package media

import (
	"context"
	"io"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/media"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/storage"
)

type ListMedia struct {
	repo domain.Repository
}

func NewListMedia(repo domain.Repository) *ListMedia {
	return &ListMedia{repo: repo}
}

func (uc *ListMedia) Execute(
	ctx context.Context,
	workOrderID uint,
	phase string,
) ([]models.Media, error) {

	if phase != "" && !domain.ValidPhase(phase) {
		return nil, domain.ErrInvalidPhase
	}

	if _, err := uc.repo.GetWorkOrderByID(ctx, workOrderID); err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	return uc.repo.ListForWorkOrder(ctx, workOrderID, phase)
}

// OpenMedia streams a stored photo (or its thumbnail) for staff reads.
type OpenMedia struct {
	repo  domain.Repository
	store storage.Storage
}

func NewOpenMedia(repo domain.Repository, store storage.Storage) *OpenMedia {
	return &OpenMedia{repo: repo, store: store}
}

func (uc *OpenMedia) Execute(
	ctx context.Context,
	workOrderID uint,
	mediaID uint,
	thumb bool,
) (io.ReadCloser, string, error) {

	m, err := uc.repo.GetMedia(ctx, workOrderID, mediaID)
	if err != nil {
		return nil, "", err
	}

	key := m.Path
	if thumb && m.ThumbPath != "" {
		key = m.ThumbPath
	}

	return uc.store.Open(ctx, key)
}
