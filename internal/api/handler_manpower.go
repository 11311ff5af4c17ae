package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"factory-ops-backend/internal/model"
	"factory-ops-backend/internal/store"
)

// ListManpower handles the GET /api/manpower request.
func (h *Handler) ListManpower(c *gin.Context) {
	mp, err := h.store.ListManpower(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve manpower"})
		return
	}
	c.JSON(http.StatusOK, mp)
}

type manpowerRequest struct {
	NIK        string `json:"nik" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// CreateManpower handles the POST /api/manpower request.
func (h *Handler) CreateManpower(c *gin.Context) {
	var req manpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := model.Manpower{NIK: req.NIK, Name: req.Name, Department: req.Department, Position: req.Position}
	if err := h.store.CreateManpower(c.Request.Context(), m); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "nik already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

type updateManpowerRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// UpdateManpower handles the PUT /api/manpower/{nik} request. The store
// records a forced logout alongside the edit.
func (h *Handler) UpdateManpower(c *gin.Context) {
	var req updateManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := model.Manpower{NIK: c.Param("nik"), Name: req.Name, Department: req.Department, Position: req.Position}
	if err := h.store.UpdateManpower(c.Request.Context(), m); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "manpower not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteManpower handles the DELETE /api/manpower/{nik} request.
func (h *Handler) DeleteManpower(c *gin.Context) {
	if err := h.store.DeleteManpower(c.Request.Context(), c.Param("nik")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "manpower not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListManpowerLogs handles the GET /api/manpower-logs request.
func (h *Handler) ListManpowerLogs(c *gin.Context) {
	logs, err := h.store.ListManpowerLogs(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve manpower logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
