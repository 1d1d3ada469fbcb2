package invoice

import (
	"context"

	domain "github.com/WorkshopServices01/workshop-api/internal/domain/invoice"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type GetInvoice struct {
	repo domain.Repository
}

func NewGetInvoice(repo domain.Repository) *GetInvoice {
	return &GetInvoice{repo: repo}
}

func (uc *GetInvoice) Execute(
	ctx context.Context,
	invoiceID uint,
) (*models.Invoice, []models.Payment, error) {

	inv, err := uc.repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	payments, err := uc.repo.ListPayments(ctx, inv.ID)
	if err != nil {
		return nil, nil, err
	}

	return inv, payments, nil
}
