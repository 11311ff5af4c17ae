package api

import (
	"factory-ops-backend/config"
	"factory-ops-backend/internal/store"
	"factory-ops-backend/internal/timeline"

	"github.com/SherClockHolmes/webpush-go"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	classify timeline.Classifier
	clock    timeline.Clock
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cfg *config.Config, webpushOptions *webpush.Options) *Handler {
	classify := timeline.DefaultClassifier
	if cfg != nil {
		classify = timeline.NewClassifier(
			cfg.Timeline.StateRunningValues,
			cfg.Timeline.StateStandbyValues,
			cfg.Timeline.StateStoppedValues,
		)
	}
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		classify: classify,
		clock:    timeline.SystemClock{},
	}
}
