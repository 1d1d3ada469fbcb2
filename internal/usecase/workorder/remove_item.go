package workorder

import (
	"context"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
)

type RemoveItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveItem {
	return &RemoveItem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RemoveItem) Execute(
	ctx context.Context,
	actorID uint,
	workOrderID uint,
	itemID uint,
) error {

	if err := uc.repo.RemoveItem(ctx, workOrderID, itemID); err != nil {
		return httperr.ErrBusiness("item_not_found")
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &actorID,
		Action:   "work_order_item_removed",
		Entity:   "work_order",
		EntityID: &workOrderID,
	})

	return nil
}
