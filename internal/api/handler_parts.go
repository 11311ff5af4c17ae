package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"factory-ops-backend/internal/model"
	"factory-ops-backend/internal/store"
)

// ListParts handles the GET /api/parts request.
func (h *Handler) ListParts(c *gin.Context) {
	parts, err := h.store.ListParts(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parts"})
		return
	}
	c.JSON(http.StatusOK, parts)
}

type partRequest struct {
	MachineName string `json:"machine_name" binding:"required"`
	ProductName string `json:"name_product" binding:"required"`
}

// CreatePart handles the POST /api/parts request.
func (h *Handler) CreatePart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := model.Part{MachineName: req.MachineName, ProductName: req.ProductName}
	if err := h.store.CreatePart(c.Request.Context(), p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "part already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

type updatePartRequest struct {
	Old partRequest `json:"old" binding:"required"`
	New partRequest `json:"new" binding:"required"`
}

// UpdatePart handles the PUT /api/parts request. The part's identity is its
// machine+name pair, so the request carries both the old and the new pair.
func (h *Handler) UpdatePart(c *gin.Context) {
	var req updatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	old := model.Part{MachineName: req.Old.MachineName, ProductName: req.Old.ProductName}
	updated := model.Part{MachineName: req.New.MachineName, ProductName: req.New.ProductName}
	if err := h.store.UpdatePart(c.Request.Context(), old, updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePart handles the DELETE /api/parts request.
func (h *Handler) DeletePart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := model.Part{MachineName: req.MachineName, ProductName: req.ProductName}
	if err := h.store.DeletePart(c.Request.Context(), p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProductLogs handles the GET /api/product-logs request.
func (h *Handler) ListProductLogs(c *gin.Context) {
	logs, err := h.store.ListProductLogs(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

type productLogRequest struct {
	MachineName  string `json:"machine_name" binding:"required"`
	ProductName  string `json:"name_product" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=start stop"`
	ManpowerName string `json:"name_manpower" binding:"required"`
}

// AppendProductLog handles the POST /api/product-logs request: an operator
// starting or stopping work on a part at a machine.
func (h *Handler) AppendProductLog(c *gin.Context) {
	var req productLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l := model.ProductLog{
		MachineName:  req.MachineName,
		ProductName:  req.ProductName,
		Action:       req.Action,
		ManpowerName: req.ManpowerName,
	}
	if err := h.store.AppendProductLog(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}
