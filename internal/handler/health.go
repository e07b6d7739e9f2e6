package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Geraghw1/defaero-deal-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response. Probes the storage backend
// with a trivial query; never exposes credentials or internals.
func Health(db storage.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if _, err := db.QueryOne(ctx, "SELECT 1 AS ok"); err != nil {
			dbStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok": status == http.StatusOK,
			"db": dbStatus,
		})
	}
}
