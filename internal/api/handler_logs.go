package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"factory-ops-backend/internal/timeline"
)

const dateLayout = "2006-01-02"

// queryWindow parses the start/end date query params into a full-day query
// window. Both default to today; end < start is rejected.
func (h *Handler) queryWindow(c *gin.Context) (timeline.Window, bool) {
	now := h.clock.Now()
	start, end := now, now

	if p := c.Query("start"); p != "" {
		t, err := time.Parse(dateLayout, p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'start' date, use YYYY-MM-DD"})
			return timeline.Window{}, false
		}
		start = t
	}
	if p := c.Query("end"); p != "" {
		t, err := time.Parse(dateLayout, p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'end' date, use YYYY-MM-DD"})
			return timeline.Window{}, false
		}
		end = t
	}

	w := timeline.DayWindow(start, end)
	if !w.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'end' must not precede 'start'"})
		return timeline.Window{}, false
	}
	return w, true
}

// GetMachineLogs handles the GET /api/machines/{machine}/logs request:
// raw telemetry rows for a machine over a day range.
func (h *Handler) GetMachineLogs(c *gin.Context) {
	w, ok := h.queryWindow(c)
	if !ok {
		return
	}

	rows, err := h.store.MachineLogsBetween(c.Request.Context(), c.Param("machine"), w.Start, w.End)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machine logs"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
