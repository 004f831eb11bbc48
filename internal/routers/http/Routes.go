package http

import (
	"github.com/gin-gonic/gin"
)

func AddRoutes(r *gin.Engine, handler *Handler) {
	r.POST("/analyze", handler.AnalyzeVideo)

	r.GET("/analyses", handler.ListAnalyses)
	r.GET("/analyses/:id", handler.GetAnalysis)
	r.DELETE("/analyses/:id", handler.DeleteAnalysis)

	r.GET("/metrics", gin.WrapH(handler.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)
	}
}
