package approval

import (
	"context"
	"strconv"
	"time"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	workorderdomain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type DecideApprovalInput struct {
	Token string

	// approve | reject
	Decision string
	Reason   string
}

type DecideApproval struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDecideApproval(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DecideApproval {
	return &DecideApproval{
		repo:  repo,
		audit: audit,
	}
}

// Execute consumes the token and applies the decision to the work order in one
// transaction. The caller is anonymous; the token is the whole credential.
func (uc *DecideApproval) Execute(
	ctx context.Context,
	in DecideApprovalInput,
) (*models.ApprovalRequest, *models.WorkOrder, error) {

	if !domain.ValidDecision(in.Decision) {
		return nil, nil, domain.ErrInvalidDecision
	}

	now := time.Now().UTC()

	ar, wo, err := uc.repo.Consume(ctx, in.Token,
		func(ar *models.ApprovalRequest, wo *models.WorkOrder) error {
			if err := domain.CanDecide(ar, now); err != nil {
				return err
			}

			if err := workorderdomain.ApplyDecision(wo, in.Decision); err != nil {
				return err
			}

			ar.Decision = in.Decision
			ar.Reason = in.Reason
			ar.DecidedAt = &now
			return nil
		})
	if err != nil {
		return nil, nil, err
	}

	action := "customer_approve"
	if in.Decision == models.DecisionReject {
		action = "customer_reject"
	}

	// Customer actions carry no actor; the token row is the provenance.
	uc.audit.Dispatch(audit.Entry{
		Action:   action,
		Entity:   "work_order",
		EntityID: &wo.ID,
		Metadata: map[string]string{
			"approval_request_id": strconv.FormatUint(uint64(ar.ID), 10),
			"reason":              in.Reason,
		},
	})

	return ar, wo, nil
}
