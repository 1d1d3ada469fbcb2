package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	infraRepo "github.com/WorkshopServices01/workshop-api/internal/infra/repository"
	"github.com/WorkshopServices01/workshop-api/internal/middleware"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
	"github.com/WorkshopServices01/workshop-api/internal/usecase/workorder"
)

// ======================================================
// HANDLER
// ======================================================

type WorkOrderHandler struct {
	db *gorm.DB

	create    *workorder.CreateWorkOrder
	estimate  *workorder.SetEstimate
	schedule  *workorder.ScheduleWorkOrder
	start     *workorder.StartWorkOrder
	finish    *workorder.FinishWorkOrder
	close     *workorder.CloseWorkOrder
	delete    *workorder.DeleteWorkOrder
	addItem   *workorder.AddItem
	rmItem    *workorder.RemoveItem
	attachSvc *workorder.AttachService
}

func NewWorkOrderHandler(
	db *gorm.DB,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
) *WorkOrderHandler {
	repo := infraRepo.NewWorkOrderGormRepository(db)

	return &WorkOrderHandler{
		db:        db,
		create:    workorder.NewCreateWorkOrder(repo, auditDisp),
		estimate:  workorder.NewSetEstimate(repo, auditDisp),
		schedule:  workorder.NewScheduleWorkOrder(repo, auditDisp),
		start:     workorder.NewStartWorkOrder(repo, auditDisp),
		finish:    workorder.NewFinishWorkOrder(repo, auditDisp, notifyDisp),
		close:     workorder.NewCloseWorkOrder(repo, auditDisp),
		delete:    workorder.NewDeleteWorkOrder(repo, auditDisp),
		addItem:   workorder.NewAddItem(repo, auditDisp),
		rmItem:    workorder.NewRemoveItem(repo, auditDisp),
		attachSvc: workorder.NewAttachService(repo, auditDisp),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWorkOrderRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	VehicleID  uint   `json:"vehicle_id" binding:"required"`
	Complaint  string `json:"complaint"`
	Notes      string `json:"notes"`
}

type SetEstimateRequest struct {
	EstParts *decimal.Decimal `json:"est_parts"`
	EstLabor *decimal.Decimal `json:"est_labor"`
}

type ScheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type FinishRequest struct {
	FinalCost *decimal.Decimal `json:"final_cost"`
}

type AddItemRequest struct {
	ItemType  string          `json:"item_type" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Qty       decimal.Decimal `json:"qty" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

type AttachServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func actorID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid work order data.")
		return
	}

	wo, err := h.create.Execute(c.Request.Context(), workorder.CreateWorkOrderInput{
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		CreatedBy:  actorID(c),
		Complaint:  req.Complaint,
		Notes:      req.Notes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wo)
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	q := h.db.Model(&models.WorkOrder{})

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}

	var orders []models.WorkOrder
	if err := q.
		Preload("Customer").
		Preload("Vehicle").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_work_orders", "Could not list work orders.")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	var wo models.WorkOrder
	if err := h.db.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Items").
		Preload("Services.Service").
		Preload("Media").
		First(&wo, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "work_order_not_found", "Work order not found.")
		return
	}

	c.JSON(http.StatusOK, wo)
}

// ======================================================
// ESTIMATE / SCHEDULE
// ======================================================

func (h *WorkOrderHandler) SetEstimate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SetEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid estimate data.")
		return
	}
	if req.EstParts == nil && req.EstLabor == nil {
		httperr.BadRequest(c, "empty_estimate", "At least one estimate operand is required.")
		return
	}
	if (req.EstParts != nil && req.EstParts.IsNegative()) ||
		(req.EstLabor != nil && req.EstLabor.IsNegative()) {
		httperr.BadRequest(c, "negative_estimate", "Estimate values cannot be negative.")
		return
	}

	wo, err := h.estimate.Execute(c.Request.Context(), workorder.SetEstimateInput{
		WorkOrderID: id,
		ActorID:     actorID(c),
		EstParts:    req.EstParts,
		EstLabor:    req.EstLabor,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) Schedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	wo, err := h.schedule.Execute(c.Request.Context(), actorID(c), id, req.ScheduledAt)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *WorkOrderHandler) Start(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	wo, err := h.start.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) Finish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req FinishRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httperr.BadRequest(c, "invalid_request", "Invalid finish data.")
		return
	}

	wo, err := h.finish.Execute(c.Request.Context(), workorder.FinishWorkOrderInput{
		WorkOrderID: id,
		ActorID:     actorID(c),
		FinalCost:   req.FinalCost,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) Close(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	wo, err := h.close.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actorID(c), id); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// LINES
// ======================================================

func (h *WorkOrderHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid item data.")
		return
	}

	item, err := h.addItem.Execute(c.Request.Context(), workorder.AddItemInput{
		WorkOrderID: id,
		ActorID:     actorID(c),
		ItemType:    req.ItemType,
		Name:        req.Name,
		Qty:         req.Qty,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *WorkOrderHandler) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemID")
	if !ok {
		return
	}

	if err := h.rmItem.Execute(c.Request.Context(), actorID(c), id, itemID); err != nil {
		writeDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WorkOrderHandler) AttachService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AttachServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	ws, err := h.attachSvc.Execute(c.Request.Context(), actorID(c), id, req.ServiceID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ws)
}
