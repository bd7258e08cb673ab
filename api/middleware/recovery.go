package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/lfpfade/api/models"
	"github.com/kilianp07/lfpfade/core/logger"
	"github.com/kilianp07/lfpfade/core/monitoring"
)

// Recovery turns panics into a 500 INTERNAL_ERROR response and reports them
// to the error monitor.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		monitoring.CapturePanic(recovered)
		log.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewError(models.CodeInternal, "An unexpected error occurred"))
	})
}
