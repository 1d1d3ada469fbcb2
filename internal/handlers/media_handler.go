package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	infraRepo "github.com/WorkshopServices01/workshop-api/internal/infra/repository"
	"github.com/WorkshopServices01/workshop-api/internal/storage"
	"github.com/WorkshopServices01/workshop-api/internal/usecase/media"
)

type MediaHandler struct {
	upload *media.UploadMedia
	list   *media.ListMedia
	open   *media.OpenMedia
	remove *media.DeleteMedia
}

func NewMediaHandler(
	db *gorm.DB,
	store storage.Storage,
	auditDisp *audit.Dispatcher,
) *MediaHandler {
	repo := infraRepo.NewMediaGormRepository(db)

	return &MediaHandler{
		upload: media.NewUploadMedia(repo, store, auditDisp),
		list:   media.NewListMedia(repo),
		open:   media.NewOpenMedia(repo, store),
		remove: media.NewDeleteMedia(repo, store, auditDisp),
	}
}

// Upload accepts one multipart photo per request:
//
//	POST /work-orders/:id/media
//	  file:  the image (jpeg or png)
//	  phase: before | during | after
//	  note:  optional caption
func (h *MediaHandler) Upload(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A file field is required.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read the uploaded file.")
		return
	}
	defer f.Close()

	m, err := h.upload.Execute(c.Request.Context(), media.UploadMediaInput{
		WorkOrderID: id,
		ActorID:     actorID(c),
		Phase:       c.PostForm("phase"),
		Filename:    fileHeader.Filename,
		Mime:        fileHeader.Header.Get("Content-Type"),
		Note:        c.PostForm("note"),
		File:        f,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *MediaHandler) List(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), id, c.Query("phase"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *MediaHandler) Download(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	mediaID, ok := paramID(c, "mediaID")
	if !ok {
		return
	}

	r, contentType, err := h.open.Execute(
		c.Request.Context(),
		id,
		mediaID,
		c.Query("thumb") == "true",
	)
	if err != nil {
		httperr.NotFound(c, "media_not_found", "Media not found.")
		return
	}
	defer r.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, r)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	mediaID, ok := paramID(c, "mediaID")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actorID(c), id, mediaID); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
