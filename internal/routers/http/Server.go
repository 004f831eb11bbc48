package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmmndr/motion_analyzer/internal/config"
)

func NewRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(CORS(cfg.CORSOrigins))

	// Uploads larger than this spill to temporary files.
	r.MaxMultipartMemory = 32 << 20

	AddRoutes(r, handler)
	return r
}

// NewServer wraps the router in an http.Server. The write timeout leaves room
// for the slowest allowed analysis.
func NewServer(cfg *config.Config, router *gin.Engine) *nethttp.Server {
	return &nethttp.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: cfg.AnalysisTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
