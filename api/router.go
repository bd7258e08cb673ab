package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/lfpfade/api/middleware"
	"github.com/kilianp07/lfpfade/api/simulation"
	"github.com/kilianp07/lfpfade/core/logger"
	coresim "github.com/kilianp07/lfpfade/core/simulation"
)

// Options configure the router.
type Options struct {
	Simulator   *coresim.Simulator
	Presets     simulation.PresetSource
	CORSOrigins []string
	Logger      logger.Logger
}

// NewRouter wires the middleware and every calculator route.
func NewRouter(o Options) *gin.Engine {
	if o.Logger == nil {
		o.Logger = logger.NopLogger{}
	}
	r := gin.New()
	r.Use(middleware.Recovery(o.Logger))
	r.Use(middleware.Logger(o.Logger))
	if len(o.CORSOrigins) > 0 {
		r.Use(middleware.CORS(o.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := simulation.NewHandler(o.Simulator, o.Presets)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/defaults", h.Defaults)
		v1.GET("/presets", h.Presets)
		v1.POST("/simulate", h.Simulate)
		v1.GET("/simulate/export", h.Export)
	}
	r.GET("/chart", h.Chart)
	return r
}
