package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	workorderdomain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type IssueApprovalInput struct {
	WorkOrderID uint
	ActorID     uint

	// email | whatsapp
	Channel string
}

// ======================================================
// USE CASE
// ======================================================

type IssueApproval struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher

	publicBaseURL string
	ttl           time.Duration
}

func NewIssueApproval(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
	publicBaseURL string,
	ttl time.Duration,
) *IssueApproval {
	return &IssueApproval{
		repo:          repo,
		audit:         audit,
		notify:        notify,
		publicBaseURL: publicBaseURL,
		ttl:           ttl,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *IssueApproval) Execute(
	ctx context.Context,
	in IssueApprovalInput,
) (*models.ApprovalRequest, error) {

	if !domain.ValidChannel(in.Channel) {
		return nil, httperr.ErrBusiness("invalid_channel")
	}

	wo, err := uc.repo.GetWorkOrderByID(ctx, in.WorkOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	if wo.EstTotal == nil {
		return nil, httperr.ErrBusiness("estimate_required")
	}

	// A fresh order transitions to awaiting_approval; an order already
	// awaiting allows a re-send, which supersedes the previous link.
	switch workorderdomain.Status(wo.Status) {
	case workorderdomain.StatusNew:
		if err := workorderdomain.RequestApproval(wo); err != nil {
			return nil, err
		}
	case workorderdomain.StatusAwaitingApproval:
	default:
		return nil, workorderdomain.CanRequestApproval(workorderdomain.Status(wo.Status))
	}

	token, err := domain.NewToken()
	if err != nil {
		return nil, err
	}

	ar := &models.ApprovalRequest{
		WorkOrderID: wo.ID,
		Token:       token,
		ExpiresAt:   time.Now().UTC().Add(uc.ttl),
		SentVia:     in.Channel,
	}

	superseded, err := uc.repo.IssueRequest(ctx, ar, wo)
	if err != nil {
		return nil, err
	}

	for _, prev := range superseded {
		prevID := prev.ID
		uc.audit.Dispatch(audit.Entry{
			ActorID:  &in.ActorID,
			Action:   "approval_superseded",
			Entity:   "approval_request",
			EntityID: &prevID,
		})
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.ActorID,
		Action:   "approval_requested",
		Entity:   "work_order",
		EntityID: &wo.ID,
		Metadata: map[string]string{
			"sent_via": in.Channel,
		},
	})

	uc.queueApprovalLink(ctx, wo, ar)

	return ar, nil
}

func (uc *IssueApproval) queueApprovalLink(
	ctx context.Context,
	wo *models.WorkOrder,
	ar *models.ApprovalRequest,
) {
	customer, err := uc.repo.GetCustomerByID(ctx, wo.CustomerID)
	if err != nil {
		return
	}

	link := fmt.Sprintf("%s/api/public/approvals/%s", uc.publicBaseURL, ar.Token)
	body := fmt.Sprintf(
		"Hi %s, the estimate for your repair is %s. Review and decide here: %s "+
			"(link valid until %s)",
		customer.Name,
		wo.EstTotal.StringFixed(2),
		link,
		ar.ExpiresAt.Format("2006-01-02 15:04 MST"),
	)

	msg := notify.Message{
		Channel: ar.SentVia,
		Body:    body,
	}

	switch ar.SentVia {
	case models.ChannelEmail:
		msg.Recipient = customer.Email
		msg.Subject = "Repair estimate awaiting your approval"
	case models.ChannelWhatsApp:
		msg.Recipient = customer.Phone
	}

	if msg.Recipient == "" {
		return
	}
	uc.notify.Dispatch(msg)
}
