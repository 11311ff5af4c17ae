package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"factory-ops-backend/config"
	"factory-ops-backend/internal/mw"
	"factory-ops-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, log *logrus.Logger, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.New()
	r.Use(mw.Logger(log), gin.Recovery())

	handler := NewHandler(s, cfg, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Read endpoints the dashboard polls every few seconds share one short
	// response cache.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/devices", caching, handler.ListDevices)
		api.POST("/devices", handler.CreateDevice)
		api.PUT("/devices/:machine_name", handler.UpdateDevice)
		api.DELETE("/devices/:machine_name", handler.DeleteDevice)
		api.GET("/devices/:machine_name/tags", caching, handler.GetDeviceTags)

		api.GET("/manpower", handler.ListManpower)
		api.POST("/manpower", handler.CreateManpower)
		api.PUT("/manpower/:nik", handler.UpdateManpower)
		api.DELETE("/manpower/:nik", handler.DeleteManpower)
		api.GET("/manpower-logs", handler.ListManpowerLogs)

		api.GET("/parts", handler.ListParts)
		api.POST("/parts", handler.CreatePart)
		api.PUT("/parts", handler.UpdatePart)
		api.DELETE("/parts", handler.DeletePart)
		api.GET("/product-logs", handler.ListProductLogs)
		api.POST("/product-logs", handler.AppendProductLog)

		api.GET("/workorders", handler.ListWorkOrders)
		api.POST("/workorders", handler.CreateWorkOrder)
		api.PUT("/workorders/:wo_number/status", handler.UpdateWorkOrderStatus)
		api.GET("/workorders/:wo_number/timeline", caching, handler.GetWorkOrderTimeline)
		api.DELETE("/workorders/:wo_number", handler.DeleteWorkOrder)

		api.GET("/machines/:machine/logs", handler.GetMachineLogs)
		api.GET("/machines/:machine/timeline", caching, handler.GetTimeline)
		api.GET("/machines/:machine/timeline/export", handler.ExportTimelineCSV)

		api.POST("/login", handler.Login)
		api.POST("/change-password", handler.ChangePassword)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
