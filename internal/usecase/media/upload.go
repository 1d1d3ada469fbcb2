package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/media"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/mediaproc"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/storage"
)

// 10 MB per photo.
const maxUploadBytes = 10 << 20

// ======================================================
// INPUT
// ======================================================

type UploadMediaInput struct {
	WorkOrderID uint
	ActorID     uint

	// before | during | after
	Phase    string
	Filename string
	Mime     string
	Note     string
	File     io.Reader
}

// ======================================================
// USE CASE
// ======================================================

type UploadMedia struct {
	repo  domain.Repository
	store storage.Storage
	audit *audit.Dispatcher
}

func NewUploadMedia(
	repo domain.Repository,
	store storage.Storage,
	audit *audit.Dispatcher,
) *UploadMedia {
	return &UploadMedia{
		repo:  repo,
		store: store,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UploadMedia) Execute(
	ctx context.Context,
	in UploadMediaInput,
) (*models.Media, error) {

	if !domain.ValidPhase(in.Phase) {
		return nil, domain.ErrInvalidPhase
	}

	wo, err := uc.repo.GetWorkOrderByID(ctx, in.WorkOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	ext := strings.ToLower(path.Ext(in.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil, httperr.ErrBusiness("unsupported_media_type")
	}

	data, err := io.ReadAll(io.LimitReader(in.File, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxUploadBytes {
		return nil, httperr.ErrBusiness("file_too_large")
	}

	key := fmt.Sprintf("workorders/%d/%s%s", wo.ID, uuid.NewString(), ext)
	if err := uc.store.Save(ctx, key, in.Mime, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	// Thumbnail failure keeps the original; the approval page falls back to
	// the full photo.
	thumbKey := ""
	if thumb, err := mediaproc.Thumbnail(bytes.NewReader(data)); err == nil {
		thumbKey = strings.TrimSuffix(key, ext) + "_thumb.webp"
		if err := uc.store.Save(ctx, thumbKey, "image/webp", bytes.NewReader(thumb)); err != nil {
			logrus.WithError(err).WithField("key", thumbKey).Warn("thumbnail save failed")
			thumbKey = ""
		}
	} else {
		logrus.WithError(err).WithField("key", key).Warn("thumbnail encode failed")
	}

	m := &models.Media{
		WorkOrderID: wo.ID,
		Phase:       in.Phase,
		Path:        key,
		ThumbPath:   thumbKey,
		Mime:        in.Mime,
		Note:        in.Note,
	}

	if err := uc.repo.CreateMedia(ctx, m); err != nil {
		if delErr := uc.store.Delete(ctx, key); delErr != nil {
			logrus.WithError(delErr).WithField("key", key).Warn("orphan cleanup failed")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:       &in.ActorID,
		Action:        "media_uploaded",
		Entity:        "work_order",
		EntityID:      &wo.ID,
		AttachmentURL: key,
		Metadata: map[string]string{
			"phase": in.Phase,
		},
	})

	return m, nil
}
