package approval

import (
	"context"
	"time"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

// ApprovalView is everything the public approval page shows: the order
// summary, the estimate and the "before" photos taken at intake.
type ApprovalView struct {
	Request   *models.ApprovalRequest
	WorkOrder *models.WorkOrder
	Media     []models.Media
	Expired   bool
}

type ViewApproval struct {
	repo domain.Repository
}

func NewViewApproval(repo domain.Repository) *ViewApproval {
	return &ViewApproval{repo: repo}
}

// Execute resolves a token for display. An expired token still resolves, with
// Expired set, so the page can say why the buttons are gone. A decided token
// also still resolves; only deciding is single-use.
func (uc *ViewApproval) Execute(
	ctx context.Context,
	token string,
) (*ApprovalView, error) {

	ar, err := uc.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	wo, err := uc.repo.GetWorkOrderByID(ctx, ar.WorkOrderID)
	if err != nil {
		return nil, err
	}

	media, err := uc.repo.ListMediaForWorkOrder(ctx, wo.ID, models.MediaPhaseBefore)
	if err != nil {
		return nil, err
	}

	return &ApprovalView{
		Request:   ar,
		WorkOrder: wo,
		Media:     media,
		Expired:   domain.IsExpired(ar, time.Now().UTC()),
	}, nil
}

// MediaForToken gates raw media reads on a live token. Viewing stays allowed
// after the decision but never after expiry.
type MediaForToken struct {
	repo domain.Repository
}

func NewMediaForToken(repo domain.Repository) *MediaForToken {
	return &MediaForToken{repo: repo}
}

func (uc *MediaForToken) Execute(
	ctx context.Context,
	token string,
	mediaID uint,
) (*models.Media, error) {

	ar, err := uc.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := domain.CanViewMedia(ar, time.Now().UTC()); err != nil {
		return nil, err
	}

	media, err := uc.repo.ListMediaForWorkOrder(ctx, ar.WorkOrderID, "")
	if err != nil {
		return nil, err
	}

	for i := range media {
		if media[i].ID == mediaID && media[i].Phase == models.MediaPhaseBefore {
			return &media[i], nil
		}
	}
	return nil, domain.ErrTokenNotFound
}
