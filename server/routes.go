package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/theapemachine/qbell"
)

// MeasurementPath is the only route of the front door.
const MeasurementPath = "/quantum-measurement"

// Measurer is what the route needs from the measurement service.
type Measurer interface {
	MeasureBellPair(ctx context.Context) (qbell.Counts, error)
	Format(counts qbell.Counts) qbell.Payload
}

// SetupRoutes registers the measurement route and its preflight.
// Any other method on the path gets gin's 405, any other path its 404.
func SetupRoutes(router *gin.Engine, svc Measurer) {
	router.GET(MeasurementPath, HandleMeasurement(svc))
	router.OPTIONS(MeasurementPath, HandlePreflight)
}

// HandleMeasurement runs one full measurement per request.
func HandleMeasurement(svc Measurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := svc.MeasureBellPair(c.Request.Context())
		if err != nil {
			log.Error("measurement request failed", "path", c.FullPath(), "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, svc.Format(counts))
	}
}

// HandlePreflight answers CORS preflight requests; the headers come from
// the CORS middleware.
func HandlePreflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
