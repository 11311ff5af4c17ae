package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"factory-ops-backend/internal/model"
	"factory-ops-backend/internal/timeline"
)

// timelineResponse is the full dashboard payload for one machine and window.
type timelineResponse struct {
	Machine string           `json:"machine"`
	Window  windowResponse   `json:"window"`
	Session timeline.Session `json:"session"`
	timeline.Result
}

type windowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GetTimeline handles the GET /api/machines/{machine}/timeline request.
func (h *Handler) GetTimeline(c *gin.Context) {
	result, w, ok := h.computeTimeline(c)
	if !ok {
		return
	}

	session, _ := timeline.ActiveSession(result.logs, h.clock.Now())
	c.JSON(http.StatusOK, timelineResponse{
		Machine: c.Param("machine"),
		Window:  windowResponse{Start: w.Start, End: w.End},
		Session: session,
		Result:  result.Result,
	})
}

// ExportTimelineCSV handles the GET /api/machines/{machine}/timeline/export
// request, streaming the history table as a CSV download.
func (h *Handler) ExportTimelineCSV(c *gin.Context) {
	result, w, ok := h.computeTimeline(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.csv",
		c.Param("machine"), w.Start.Format(dateLayout), w.End.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")
	if err := timeline.WriteHistoryCSV(c.Writer, result.History); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

type computedTimeline struct {
	timeline.Result
	logs []timeline.ActionLog
}

// computeTimeline loads a machine's status events and session logs and runs
// the engine over the requested window. On failure it has already written
// the error response.
func (h *Handler) computeTimeline(c *gin.Context) (computedTimeline, timeline.Window, bool) {
	w, ok := h.queryWindow(c)
	if !ok {
		return computedTimeline{}, timeline.Window{}, false
	}

	machine := c.Param("machine")
	ctx := c.Request.Context()

	events, err := h.store.StatusEvents(ctx, machine)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve status events"})
		return computedTimeline{}, timeline.Window{}, false
	}
	productLogs, err := h.store.ProductLogsForMachine(ctx, machine)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product logs"})
		return computedTimeline{}, timeline.Window{}, false
	}

	logs := actionLogs(productLogs)
	result := timeline.Compute(rawEvents(events), logs, w, h.classify, h.clock)
	return computedTimeline{Result: result, logs: logs}, w, true
}

// rawEvents converts stored status samples into engine input. The gateway's
// own timestamp string is preferred; rows missing one fall back to the
// server-side insert time. Unparsable status codes become NaN, which the
// classifier maps to unknown.
func rawEvents(rows []model.MachineLog) []timeline.RawEvent {
	raw := make([]timeline.RawEvent, 0, len(rows))
	for _, r := range rows {
		ts := r.RecordedAt
		if ts == "" {
			ts = r.CreatedAt.UTC().Format("2006-01-02 15:04:05")
		}
		code, err := strconv.ParseFloat(r.TagValue, 64)
		if err != nil {
			code = math.NaN()
		}
		raw = append(raw, timeline.RawEvent{Timestamp: ts, Code: code})
	}
	return raw
}

func actionLogs(rows []model.ProductLog) []timeline.ActionLog {
	logs := make([]timeline.ActionLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, timeline.ActionLog{
			Timestamp: r.CreatedAt.UTC(),
			Action:    timeline.Action(r.Action),
			Operator:  r.ManpowerName,
			Part:      r.ProductName,
		})
	}
	return logs
}
