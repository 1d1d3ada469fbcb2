package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	"github.com/WorkshopServices01/workshop-api/internal/config"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	infraRepo "github.com/WorkshopServices01/workshop-api/internal/infra/repository"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
	"github.com/WorkshopServices01/workshop-api/internal/usecase/approval"
)

// ApprovalHandler covers the staff side: sending the approval link out and
// checking where a request stands. The customer side lives in PublicHandler.
type ApprovalHandler struct {
	db    *gorm.DB
	issue *approval.IssueApproval
}

func NewApprovalHandler(
	db *gorm.DB,
	cfg *config.Config,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
) *ApprovalHandler {
	repo := infraRepo.NewApprovalGormRepository(db)
	ttl := time.Duration(cfg.ApprovalTTLHours) * time.Hour

	return &ApprovalHandler{
		db:    db,
		issue: approval.NewIssueApproval(repo, auditDisp, notifyDisp, cfg.PublicBaseURL, ttl),
	}
}

type IssueApprovalRequest struct {
	// email | whatsapp
	Channel string `json:"channel" binding:"required"`
}

func (h *ApprovalHandler) Issue(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req IssueApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid approval request data.")
		return
	}

	ar, err := h.issue.Execute(c.Request.Context(), approval.IssueApprovalInput{
		WorkOrderID: id,
		ActorID:     actorID(c),
		Channel:     req.Channel,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            ar.ID,
		"work_order_id": ar.WorkOrderID,
		"sent_via":      ar.SentVia,
		"expires_at":    ar.ExpiresAt,
	})
}

// ListForWorkOrder shows the approval history of one order, newest first.
// Tokens are never echoed back to staff.
func (h *ApprovalHandler) ListForWorkOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var requests []models.ApprovalRequest
	if err := h.db.
		Where("work_order_id = ?", id).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_approvals", "Could not list approval requests.")
		return
	}

	out := make([]gin.H, 0, len(requests))
	for _, ar := range requests {
		out = append(out, gin.H{
			"id":         ar.ID,
			"sent_via":   ar.SentVia,
			"is_used":    ar.IsUsed,
			"decision":   ar.Decision,
			"reason":     ar.Reason,
			"decided_at": ar.DecidedAt,
			"expires_at": ar.ExpiresAt,
			"created_at": ar.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}
