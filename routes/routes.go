package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"calbridge/handlers"
	"calbridge/middleware"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// RegisterToolRoutes registers the scheduling operations exposed to the
// voice-assistant tool layer. Every operation endpoint requires the shared
// bearer token.
func RegisterToolRoutes(r *gin.Engine, th *handlers.ToolHandler, authToken string) {
	tools := r.Group("")
	{
		tools.Use(middleware.BearerAuthMiddleware(authToken))
		tools.POST("/cancel-appointment", th.CancelAppointment)
		tools.POST("/get-available-slots", th.GetAvailableSlots)
		tools.POST("/get-upcoming-appointments", th.GetUpcomingAppointments)
		tools.POST("/create-booking", th.CreateBooking)
		tools.POST("/get-event-types", th.GetEventTypes)
	}
}

// RegisterHealthRoute registers a health-check endpoint. It is deliberately
// unauthenticated so the hosting platform can probe liveness.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, th *handlers.ToolHandler, authToken string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterToolRoutes(r, th, authToken)
}
