package handlers

import (
	"context"
	"net/http"
	"time"

	"tablebooker/config"
	"tablebooker/services/ai"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	DB      *mongo.Client
	Cache   *redis.Client
	Backend ai.CompletionBackend
}

func NewHealthHandler(db *mongo.Client, cache *redis.Client, backend ai.CompletionBackend) *HealthHandler {
	return &HealthHandler{DB: db, Cache: cache, Backend: backend}
}

// Health pings each dependency with a short timeout. The endpoint stays 200
// as long as the service itself is up; degraded dependencies are reported in
// the body.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	components := gin.H{}

	if h.DB != nil {
		if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
			components["database"] = "unreachable"
		} else {
			components["database"] = "ok"
		}
	}
	if h.Cache != nil {
		if err := h.Cache.Ping(ctx).Err(); err != nil {
			components["cache"] = "unreachable"
		} else {
			components["cache"] = "ok"
		}
	}
	if h.Backend != nil {
		if h.Backend.Available(ctx) {
			components["ai"] = "ok"
		} else {
			components["ai"] = "unreachable"
		}
	}
	components["booking_api"] = bookingAPIStatus(ctx)

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"components": components,
	})
}

// AIStatus reports which completion backend is active, if any.
func (h *HealthHandler) AIStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if h.Backend == nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "mode": "fallback"})
		return
	}
	available := h.Backend.Available(ctx)
	mode := "fallback"
	if available {
		mode = h.Backend.Name()
	}
	c.JSON(http.StatusOK, gin.H{"available": available, "mode": mode})
}

func bookingAPIStatus(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.AppConfig.BookingAPIBaseURL+"/", nil)
	if err != nil {
		return "unreachable"
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "unreachable"
	}
	resp.Body.Close()
	return "ok"
}
