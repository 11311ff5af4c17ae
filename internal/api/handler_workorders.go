package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"factory-ops-backend/internal/model"
	"factory-ops-backend/internal/store"
	"factory-ops-backend/internal/timeline"
)

// ListWorkOrders handles the GET /api/workorders request.
func (h *Handler) ListWorkOrders(c *gin.Context) {
	orders, err := h.store.ListWorkOrders(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

type createWorkOrderRequest struct {
	MachineName string `json:"machine_name" binding:"required"`
	ProductName string `json:"name_product" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// CreateWorkOrder handles the POST /api/workorders request. The WO number is
// server-generated; new orders always start open.
func (h *Handler) CreateWorkOrder(c *gin.Context) {
	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo := model.WorkOrder{
		WONumber:    newWorkOrderNumber(),
		MachineName: req.MachineName,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Status:      model.WorkOrderOpen,
	}
	if err := h.store.CreateWorkOrder(c.Request.Context(), &wo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, wo)
}

type updateWorkOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_process done"`
}

// UpdateWorkOrderStatus handles the PUT /api/workorders/{wo_number}/status request.
func (h *Handler) UpdateWorkOrderStatus(c *gin.Context) {
	var req updateWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.UpdateWorkOrderStatus(c.Request.Context(), c.Param("wo_number"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWorkOrder handles the DELETE /api/workorders/{wo_number} request.
func (h *Handler) DeleteWorkOrder(c *gin.Context) {
	if err := h.store.DeleteWorkOrder(c.Request.Context(), c.Param("wo_number")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// workOrderTimelineResponse is the work-order detail payload: one part's
// WORKING / NO WORKING timeline over the requested window.
type workOrderTimelineResponse struct {
	WONumber string `json:"wo_number"`
	Machine  string `json:"machine_name"`
	Part     string `json:"name_product"`

	Segments []timeline.PartSegment    `json:"segments"`
	Summary  timeline.PartSummary      `json:"summary"`
	Clock    timeline.PartClockSummary `json:"clockSummary"`
}

// GetWorkOrderTimeline handles the GET /api/workorders/{wo_number}/timeline
// request. The order's part-session logs are segmented over the window, and
// the order's creation instant bounds coverage: intervals before it render
// as NO DATA regardless of older session logs.
func (h *Handler) GetWorkOrderTimeline(c *gin.Context) {
	w, ok := h.queryWindow(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	wo, err := h.store.GetWorkOrder(ctx, c.Param("wo_number"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	productLogs, err := h.store.ProductLogsForMachine(ctx, wo.MachineName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product logs"})
		return
	}

	var logs []timeline.ActionLog
	for _, l := range productLogs {
		if l.ProductName != wo.ProductName {
			continue
		}
		logs = append(logs, timeline.ActionLog{
			Timestamp: l.CreatedAt.UTC(),
			Action:    timeline.Action(l.Action),
			Operator:  l.ManpowerName,
			Part:      l.ProductName,
		})
	}

	segs := timeline.BuildPartSegments(logs, w, wo.CreatedAt.UTC(), h.clock.Now())
	summary := timeline.SummarizePart(segs)
	c.JSON(http.StatusOK, workOrderTimelineResponse{
		WONumber: wo.WONumber,
		Machine:  wo.MachineName,
		Part:     wo.ProductName,
		Segments: segs,
		Summary:  summary,
		Clock:    summary.Format(),
	})
}

// newWorkOrderNumber generates a WO number operators can read off a screen.
func newWorkOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("WO-%s", id[:12])
}
