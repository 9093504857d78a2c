package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check is one dependency reported by /ready. Only required checks decide
// readiness; optional ones (store, cache) are informational.
type Check struct {
	Name     string
	Required bool
	Probe    func(ctx context.Context) bool
}

// RegisterHealth registers GET /health (liveness) and GET /ready (readiness).
func RegisterHealth(r *gin.Engine, started time.Time, checks ...Check) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		for _, chk := range checks {
			ok := chk.Probe(ctx)
			deps[chk.Name] = ok
			if chk.Required && !ok {
				ready = false
			}
		}
		uptime := time.Since(started).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
