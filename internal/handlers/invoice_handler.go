package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	infraRepo "github.com/WorkshopServices01/workshop-api/internal/infra/repository"
	"github.com/WorkshopServices01/workshop-api/internal/usecase/invoice"
)

type InvoiceHandler struct {
	db *gorm.DB

	create *invoice.CreateInvoice
	pay    *invoice.ApplyPayment
	get    *invoice.GetInvoice
}

func NewInvoiceHandler(
	db *gorm.DB,
	auditDisp *audit.Dispatcher,
	taxRate decimal.Decimal,
	gateway invoice.PaymentGateway,
) *InvoiceHandler {
	repo := infraRepo.NewInvoiceGormRepository(db)

	return &InvoiceHandler{
		db:     db,
		create: invoice.NewCreateInvoice(repo, auditDisp, taxRate),
		pay:    invoice.NewApplyPayment(repo, auditDisp, gateway),
		get:    invoice.NewGetInvoice(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateInvoiceRequest struct {
	WorkOrderID uint            `json:"work_order_id" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
}

type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`

	// cash | card | transfer
	Method string `json:"method" binding:"required"`
	Ref    string `json:"ref"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid invoice data.")
		return
	}

	inv, err := h.create.Execute(c.Request.Context(), invoice.CreateInvoiceInput{
		WorkOrderID: req.WorkOrderID,
		ActorID:     actorID(c),
		Discount:    req.Discount,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	inv, payments, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice":  inv,
		"payments": payments,
		"balance":  inv.Balance(),
	})
}

func (h *InvoiceHandler) ApplyPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payment data.")
		return
	}

	payment, err := h.pay.Execute(c.Request.Context(), invoice.ApplyPaymentInput{
		InvoiceID: id,
		ActorID:   actorID(c),
		Amount:    req.Amount,
		Method:    req.Method,
		Ref:       req.Ref,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}
