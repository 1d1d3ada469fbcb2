package media

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/media"
	"github.com/WorkshopServices01/workshop-api/internal/storage"
)

// DeleteMedia removes a photo from a work order. The row goes first; blob
// removal is best-effort because a leaked object costs storage, a dangling
// row costs a broken approval page.
type DeleteMedia struct {
	repo  domain.Repository
	store storage.Storage
	audit *audit.Dispatcher
}

func NewDeleteMedia(
	repo domain.Repository,
	store storage.Storage,
	audit *audit.Dispatcher,
) *DeleteMedia {
	return &DeleteMedia{
		repo:  repo,
		store: store,
		audit: audit,
	}
}

func (uc *DeleteMedia) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
	mediaID uint,
) error {

	m, err := uc.repo.GetMedia(ctx, workOrderID, mediaID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteMedia(ctx, m); err != nil {
		return err
	}

	if err := uc.store.Delete(ctx, m.Path); err != nil {
		logrus.WithError(err).WithField("key", m.Path).Warn("blob delete failed")
	}
	if m.ThumbPath != "" {
		if err := uc.store.Delete(ctx, m.ThumbPath); err != nil {
			logrus.WithError(err).WithField("key", m.ThumbPath).Warn("thumb delete failed")
		}
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:       &actorID,
		Action:        "media_deleted",
		Entity:        "work_order",
		EntityID:      &workOrderID,
		AttachmentURL: m.Path,
	})

	return nil
}
