package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/invoice"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/money"
)

//go:generate mockgen -source=apply_payment.go -destination=mocks/gateway_mock.go -package=mocks

// PaymentGateway charges card payments with an external provider and returns
// its payment reference. Cash and transfer payments never touch it.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, description, externalRef string) (string, error)
}

type ApplyPaymentInput struct {
	InvoiceID uint
	ActorID   uint

	Amount decimal.Decimal

	// cash | card | transfer
	Method string
	Ref    string
}

type ApplyPayment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	gateway PaymentGateway
}

func NewApplyPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	gateway PaymentGateway,
) *ApplyPayment {
	return &ApplyPayment{
		repo:    repo,
		audit:   audit,
		gateway: gateway,
	}
}

func (uc *ApplyPayment) Execute(
	ctx context.Context,
	in ApplyPaymentInput,
) (*models.Payment, error) {

	switch in.Method {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodTransfer:
	default:
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	amount := money.Round(in.Amount)

	// Card charges go through the provider before any row is touched; a
	// declined charge must leave the invoice untouched.
	ref := in.Ref
	if in.Method == models.PaymentMethodCard && uc.gateway != nil {
		inv, err := uc.repo.GetInvoiceByID(ctx, in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidatePayment(inv, amount); err != nil {
			return nil, err
		}

		externalRef := uuid.NewString()
		providerRef, err := uc.gateway.Charge(
			ctx,
			amount,
			fmt.Sprintf("invoice #%d", inv.ID),
			externalRef,
		)
		if err != nil {
			return nil, httperr.ErrBusiness("payment_declined")
		}
		ref = providerRef
	}

	payment, err := uc.repo.ApplyPayment(ctx, in.InvoiceID,
		func(inv *models.Invoice) (*models.Payment, error) {
			// Re-checked under the row lock; the read above was advisory.
			if err := domain.ValidatePayment(inv, amount); err != nil {
				return nil, err
			}

			inv.Paid = money.Round(inv.Paid.Add(amount))

			return &models.Payment{
				InvoiceID: inv.ID,
				Amount:    amount,
				Method:    in.Method,
				Ref:       ref,
				PaidAt:    time.Now().UTC(),
			}, nil
		})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		ActorID:  &in.ActorID,
		Action:   "payment_applied",
		Entity:   "invoice",
		EntityID: &in.InvoiceID,
		Metadata: map[string]string{
			"amount": amount.StringFixed(2),
			"method": in.Method,
		},
	})

	return payment, nil
}
