package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/money"
)

// ======================================================
// PARTS
// ======================================================

type PartHandler struct {
	db *gorm.DB
}

func NewPartHandler(db *gorm.DB) *PartHandler {
	return &PartHandler{db: db}
}

type PartRequest struct {
	Name      string          `json:"name" binding:"required"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Stock     int             `json:"stock"`
}

func (h *PartHandler) Create(c *gin.Context) {
	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid part data.")
		return
	}
	if money.IsNegative(req.UnitPrice) {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return
	}

	part := models.Part{
		Name:      req.Name,
		SKU:       strings.ToUpper(strings.TrimSpace(req.SKU)),
		UnitPrice: money.Round(req.UnitPrice),
		Stock:     req.Stock,
	}

	if err := h.db.Create(&part).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "sku_already_exists", "A part with this SKU already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_part", "Could not create part.")
		return
	}

	c.JSON(http.StatusCreated, part)
}

func (h *PartHandler) List(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Model(&models.Part{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}

	var parts []models.Part
	if err := q.Order("name ASC").Find(&parts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_parts", "Could not list parts.")
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) Update(c *gin.Context) {
	var part models.Part
	if err := h.db.First(&part, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "part_not_found", "Part not found.")
		return
	}

	var req PartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid part data.")
		return
	}
	if money.IsNegative(req.UnitPrice) {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return
	}

	part.Name = req.Name
	part.SKU = strings.ToUpper(strings.TrimSpace(req.SKU))
	part.UnitPrice = money.Round(req.UnitPrice)
	part.Stock = req.Stock

	if err := h.db.Save(&part).Error; err != nil {
		httperr.Internal(c, "failed_to_update_part", "Could not update part.")
		return
	}

	c.JSON(http.StatusOK, part)
}

// ======================================================
// SERVICES
// ======================================================

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name      string          `json:"name" binding:"required"`
	Category  string          `json:"category"`
	BasePrice decimal.Decimal `json:"base_price" binding:"required"`
	Active    *bool           `json:"active"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}
	if money.IsNegative(req.BasePrice) {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return
	}

	svc := models.Service{
		Name:      req.Name,
		Category:  strings.ToLower(strings.TrimSpace(req.Category)),
		BasePrice: money.Round(req.BasePrice),
		Active:    true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{})

	if category := strings.TrimSpace(strings.ToLower(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if c.DefaultQuery("include_inactive", "false") != "true" {
		q = q.Where("active = true")
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var svc models.Service
	if err := h.db.First(&svc, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}
	if money.IsNegative(req.BasePrice) {
		httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
		return
	}

	svc.Name = req.Name
	svc.Category = strings.ToLower(strings.TrimSpace(req.Category))
	svc.BasePrice = money.Round(req.BasePrice)
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	c.JSON(http.StatusOK, svc)
}
