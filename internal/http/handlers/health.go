package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Ping func(ctx context.Context) error

type HealthHandler struct {
	dbPing    Ping
	cachePing Ping
}

func NewHealthHandler(dbPing, cachePing Ping) *HealthHandler {
	return &HealthHandler{
		dbPing:    dbPing,
		cachePing: cachePing,
	}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 1*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	for name, ping := range map[string]Ping{"db": h.dbPing, "cache": h.cachePing} {
		if ping == nil {
			continue
		}

		if err := ping(cctx); err != nil {
			checks[name] = "down"
			ready = false
		} else {
			checks[name] = "up"
		}
	}

	if !ready {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
