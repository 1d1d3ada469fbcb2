package approval

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type Repository interface {
	GetWorkOrderByID(
		ctx context.Context,
		id uint,
	) (*models.WorkOrder, error)

	GetCustomerByID(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	// IssueRequest persists a new approval request, marks every unused,
	// unexpired request for the same work order as used (superseded, decision
	// left empty) and saves the work order, all in one transaction.
	IssueRequest(
		ctx context.Context,
		ar *models.ApprovalRequest,
		wo *models.WorkOrder,
	) (superseded []models.ApprovalRequest, err error)

	GetByToken(
		ctx context.Context,
		token string,
	) (*models.ApprovalRequest, error)

	// Consume runs apply inside one transaction with the approval request and
	// its work order locked. The final write is gated on is_used = false, so
	// two concurrent consumers see exactly one success and one
	// ErrTokenAlreadyUsed.
	Consume(
		ctx context.Context,
		token string,
		apply func(ar *models.ApprovalRequest, wo *models.WorkOrder) error,
	) (*models.ApprovalRequest, *models.WorkOrder, error)

	// ListMediaForWorkOrder returns media rows for token-scoped reads.
	ListMediaForWorkOrder(
		ctx context.Context,
		workOrderID uint,
		phase string,
	) ([]models.Media, error)
}
