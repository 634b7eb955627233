package handler

import (
	"net/http"
	"time"

	"github.com/sandiprv9898/salon-flow-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and whether the register is open. The service
// has no external dependencies, so it is healthy whenever it answers.
func Health(register service.RegisterService, started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "closed"
		if register.IsOpen() {
			status = "open"
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":             true,
			"register":       status,
			"uptime_seconds": int64(time.Since(started).Seconds()),
		})
	}
}
