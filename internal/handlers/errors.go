package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	approvaldomain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	invoicedomain "github.com/WorkshopServices01/workshop-api/internal/domain/invoice"
	mediadomain "github.com/WorkshopServices01/workshop-api/internal/domain/media"
	workorderdomain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
)

// writeDomainError maps use case failures onto the wire format. Business
// errors carry their own code; a handful of codes change the status class.
func writeDomainError(c *gin.Context, err error) {
	var terr *workorderdomain.TransitionError
	if errors.As(err, &terr) {
		httperr.Write(c, http.StatusConflict, "invalid_status_transition", terr.Error())
		return
	}

	switch {
	case errors.Is(err, invoicedomain.ErrAlreadyExists):
		httperr.Conflict(c, "invoice_already_exists", "This work order already has an invoice.")
	case errors.Is(err, invoicedomain.ErrNotFound):
		httperr.NotFound(c, "invoice_not_found", "Invoice not found.")
	case errors.Is(err, invoicedomain.ErrInvalidDiscount):
		httperr.BadRequest(c, "invalid_discount", "Discount must be between zero and the subtotal.")
	case errors.Is(err, invoicedomain.ErrInvalidAmount):
		httperr.BadRequest(c, "invalid_amount", "Payment amount must be positive.")
	case errors.Is(err, invoicedomain.ErrOverpayment):
		httperr.BadRequest(c, "overpayment", "Payment exceeds the remaining balance.")
	case errors.Is(err, mediadomain.ErrNotFound):
		httperr.NotFound(c, "media_not_found", "Media not found.")
	case errors.Is(err, mediadomain.ErrInvalidPhase):
		httperr.BadRequest(c, "invalid_phase", "Phase must be before, during or after.")
	case errors.Is(err, approvaldomain.ErrInvalidDecision):
		httperr.BadRequest(c, "invalid_decision", "Decision must be approve or reject.")
	default:
		var berr httperr.BusinessError
		if errors.As(err, &berr) {
			status := http.StatusBadRequest
			switch berr.Code {
			case "work_order_not_found", "customer_not_found", "vehicle_not_found",
				"service_not_found", "item_not_found":
				status = http.StatusNotFound
			case "work_order_has_invoice":
				status = http.StatusConflict
			}
			httperr.Write(c, status, berr.Code, berr.Code)
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
