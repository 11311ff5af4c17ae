package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"factory-ops-backend/internal/model"
	"factory-ops-backend/internal/store"
)

// ListDevices handles the GET /api/devices request.
func (h *Handler) ListDevices(c *gin.Context) {
	devices, err := h.store.ListDevices(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve devices"})
		return
	}
	c.JSON(http.StatusOK, devices)
}

type deviceRequest struct {
	MachineName  string `json:"machine_name" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
}

// CreateDevice handles the POST /api/devices request.
func (h *Handler) CreateDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := model.Device{MachineName: req.MachineName, SerialNumber: req.SerialNumber}
	if err := h.store.CreateDevice(c.Request.Context(), d); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "device already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
}

type updateDeviceRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
}

// UpdateDevice handles the PUT /api/devices/{machine_name} request.
func (h *Handler) UpdateDevice(c *gin.Context) {
	var req updateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.UpdateDevice(c.Request.Context(), c.Param("machine_name"), req.SerialNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteDevice handles the DELETE /api/devices/{machine_name} request.
func (h *Handler) DeleteDevice(c *gin.Context) {
	if err := h.store.DeleteDevice(c.Request.Context(), c.Param("machine_name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDeviceTags handles the GET /api/devices/{machine_name}/tags request. It
// returns the most recent value of every telemetry tag the machine has
// published, the live-readout panel of the dashboard.
func (h *Handler) GetDeviceTags(c *gin.Context) {
	values, err := h.store.LatestTagValues(c.Request.Context(), c.Param("machine_name"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag values"})
		return
	}
	c.JSON(http.StatusOK, values)
}
