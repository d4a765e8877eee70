package routes

import (
	"time"

	"tablebooker/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router needs.
type HandlerBundle struct {
	Chat       *handlers.ChatHandler
	Restaurant *handlers.RestaurantHandler
	Health     *handlers.HealthHandler
}

// RegisterChatRoutes registers the conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/chat", hb.Chat.HandleChat)
		api.DELETE("/chat/session/:sessionID", hb.Chat.ClearSession)
	}
}

// RegisterRestaurantRoutes registers the catalog endpoints.
func RegisterRestaurantRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/restaurants", hb.Restaurant.ListRestaurants)
		api.GET("/ai-status", hb.Health.AIStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes wires CORS and all endpoint groups onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterRestaurantRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
