package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

type VehicleRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	PlateNo    string `json:"plate_no" binding:"required"`
	Make       string `json:"make" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Year       int    `json:"year"`
	VIN        string `json:"vin"`
	Odometer   int    `json:"odometer"`
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid vehicle data.")
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, req.CustomerID).Error; err != nil {
		httperr.BadRequest(c, "customer_not_found", "Customer not found.")
		return
	}

	vehicle := models.Vehicle{
		CustomerID: req.CustomerID,
		PlateNo:    strings.ToUpper(strings.TrimSpace(req.PlateNo)),
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		VIN:        strings.ToUpper(strings.TrimSpace(req.VIN)),
		Odometer:   req.Odometer,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_create_vehicle", "Could not create vehicle.")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Vehicle{})

	if customerID := c.Query("customer_id"); customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}
	if plate := strings.TrimSpace(c.Query("plate_no")); plate != "" {
		q = q.Where("UPPER(plate_no) = ?", strings.ToUpper(plate))
	}

	var vehicles []models.Vehicle
	if err := q.Order("id ASC").Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Could not list vehicles.")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	var vehicle models.Vehicle
	if err := h.db.Preload("Customer").First(&vehicle, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid vehicle data.")
		return
	}

	// Ownership transfers go through support, not this endpoint.
	if req.CustomerID != vehicle.CustomerID {
		httperr.BadRequest(c, "customer_change_not_allowed", "Vehicle owner cannot be changed here.")
		return
	}

	vehicle.PlateNo = strings.ToUpper(strings.TrimSpace(req.PlateNo))
	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.VIN = strings.ToUpper(strings.TrimSpace(req.VIN))
	vehicle.Odometer = req.Odometer

	if err := h.db.Save(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_update_vehicle", "Could not update vehicle.")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
		return
	}

	var count int64
	h.db.Model(&models.WorkOrder{}).Where("vehicle_id = ?", vehicle.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "vehicle_has_work_orders", "Vehicle has work orders and cannot be removed.")
		return
	}

	if err := h.db.Delete(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_vehicle", "Could not delete vehicle.")
		return
	}

	c.Status(http.StatusNoContent)
}
