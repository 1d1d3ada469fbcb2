package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	approvaldomain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	infraRepo "github.com/WorkshopServices01/workshop-api/internal/infra/repository"
	"github.com/WorkshopServices01/workshop-api/internal/storage"
	"github.com/WorkshopServices01/workshop-api/internal/usecase/approval"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated customer pages. The approval token
// in the URL is the only credential; errors stay deliberately vague so the
// endpoint leaks nothing about which tokens exist.
type PublicHandler struct {
	store  storage.Storage
	view   *approval.ViewApproval
	decide *approval.DecideApproval
	media  *approval.MediaForToken
}

func NewPublicHandler(
	db *gorm.DB,
	store storage.Storage,
	auditDisp *audit.Dispatcher,
) *PublicHandler {
	repo := infraRepo.NewApprovalGormRepository(db)

	return &PublicHandler{
		store:  store,
		view:   approval.NewViewApproval(repo),
		decide: approval.NewDecideApproval(repo, auditDisp),
		media:  approval.NewMediaForToken(repo),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicDecisionRequest struct {
	// approve | reject
	Decision string `json:"decision" binding:"required"`
	Reason   string `json:"reason"`
}

////////////////////////////////////////////////////////
// VIEW
////////////////////////////////////////////////////////

func (h *PublicHandler) GetApproval(c *gin.Context) {
	token := c.Param("token")

	view, err := h.view.Execute(c.Request.Context(), token)
	if err != nil {
		httperr.NotFound(c, "not_found", "This link is not valid.")
		return
	}

	wo := view.WorkOrder

	photos := make([]gin.H, 0, len(view.Media))
	for _, m := range view.Media {
		url := fmt.Sprintf("/api/public/approvals/%s/media/%d", token, m.ID)
		photos = append(photos, gin.H{
			"id":    m.ID,
			"url":   url,
			"thumb": url + "?thumb=true",
			"note":  m.Note,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"work_order": gin.H{
			"id":        wo.ID,
			"complaint": wo.Complaint,
			"est_parts": wo.EstParts,
			"est_labor": wo.EstLabor,
			"est_total": wo.EstTotal,
			"warranty":  wo.WarrantyText,
		},
		"photos":     photos,
		"expired":    view.Expired,
		"decided":    view.Request.Decision != "",
		"decision":   view.Request.Decision,
		"expires_at": view.Request.ExpiresAt,
	})
}

////////////////////////////////////////////////////////
// DECISION
////////////////////////////////////////////////////////

func (h *PublicHandler) Decide(c *gin.Context) {
	token := c.Param("token")

	var req PublicDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A decision is required.")
		return
	}

	ar, wo, err := h.decide.Execute(c.Request.Context(), approval.DecideApprovalInput{
		Token:    token,
		Decision: req.Decision,
		Reason:   req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, approvaldomain.ErrTokenNotFound):
			httperr.NotFound(c, "not_found", "This link is not valid.")
		case errors.Is(err, approvaldomain.ErrTokenExpired):
			httperr.Write(c, http.StatusGone, "link_expired", "This link has expired. Please ask the workshop for a new one.")
		case errors.Is(err, approvaldomain.ErrTokenAlreadyUsed):
			httperr.Conflict(c, "already_decided", "A decision was already recorded for this link.")
		case errors.Is(err, approvaldomain.ErrInvalidDecision):
			httperr.BadRequest(c, "invalid_decision", "Decision must be approve or reject.")
		default:
			httperr.Internal(c, "internal_error", "Unexpected error.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"decision":   ar.Decision,
		"decided_at": ar.DecidedAt,
		"status":     wo.Status,
	})
}

////////////////////////////////////////////////////////
// MEDIA
////////////////////////////////////////////////////////

func (h *PublicHandler) GetMedia(c *gin.Context) {
	token := c.Param("token")

	mediaID, ok := paramID(c, "mediaID")
	if !ok {
		return
	}

	m, err := h.media.Execute(c.Request.Context(), token, mediaID)
	if err != nil {
		httperr.NotFound(c, "not_found", "This link is not valid.")
		return
	}

	key := m.Path
	if c.Query("thumb") == "true" && m.ThumbPath != "" {
		key = m.ThumbPath
	}

	r, contentType, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		httperr.NotFound(c, "not_found", "This link is not valid.")
		return
	}
	defer r.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, r)
}
