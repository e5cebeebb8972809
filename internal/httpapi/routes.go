package httpapi

import "github.com/gin-gonic/gin"

// Register mounts the dashboard API on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.POST("/webhook", h.ReceiveWebhook)
		api.GET("/webhook", h.ListCalls)
		api.GET("/leads", h.ListLeads)
		api.GET("/metrics", h.GetMetrics)
		api.GET("/setup-db", h.SetupDB)
	}
}
