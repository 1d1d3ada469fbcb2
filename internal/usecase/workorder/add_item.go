package workorder

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/money"
)

type AddItemInput struct {
	WorkOrderID uint
	ActorID     uint

	// part | labor
	ItemType  string
	Name      string
	Qty       decimal.Decimal
	UnitPrice decimal.Decimal
}

type AddItem struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddItem {
	return &AddItem{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddItem) Execute(
	ctx context.Context,
	in AddItemInput,
) (*models.WorkOrderItem, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, in.WorkOrderID)
	if err != nil {
		return nil, httperr.ErrBusiness("work_order_not_found")
	}

	if in.ItemType != models.ItemTypePart && in.ItemType != models.ItemTypeLabor {
		return nil, httperr.ErrBusiness("invalid_item_type")
	}
	if in.Name == "" {
		return nil, httperr.ErrBusiness("item_name_required")
	}
	if !money.IsPositive(in.Qty) || money.IsNegative(in.UnitPrice) {
		return nil, httperr.ErrBusiness("invalid_item_values")
	}

	item := &models.WorkOrderItem{
		WorkOrderID: wo.ID,
		ItemType:    in.ItemType,
		Name:        in.Name,
		Qty:         in.Qty,
		UnitPrice:   money.Round(in.UnitPrice),
	}

	if err := uc.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.ActorID,
		Action:   "work_order_item_added",
		Entity:   "work_order",
		EntityID: &wo.ID,
		Metadata: map[string]string{
			"item_type": item.ItemType,
			"name":      item.Name,
		},
	})

	return item, nil
}
