package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resource-booking-backend/controllers"
	"resource-booking-backend/middleware"
	"resource-booking-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the route tree.
func SetupRouter(
	auth *controllers.AuthController,
	resources *controllers.ResourceController,
	availability *controllers.AvailabilityController,
	bookings *controllers.BookingController,
	events *controllers.EventController,
	sessions *services.SessionService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/users", auth.Register)
		api.POST("/login", auth.Login)

		// The event channel mirrors a socket: connect first, then join and
		// leave rooms by connection id.
		api.GET("/events", events.Stream)
		api.POST("/events/join", events.Join)
		api.POST("/events/leave", events.Leave)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(sessions))
	{
		authed.POST("/logout", auth.Logout)
		authed.GET("/me", auth.Me)
		authed.GET("/users/username", auth.Username)
		authed.DELETE("/users/me", auth.DeleteAccount)

		authed.GET("/resources", resources.List)
		authed.GET("/resources/mine", resources.ListMine)
		authed.POST("/resources", resources.Create)
		authed.DELETE("/resources/:id", resources.Delete)
		authed.GET("/resources/:id/availability", availability.ByResource)
		authed.POST("/resources/:id/availability", availability.CreateForResource)

		authed.GET("/availability", availability.List)
		authed.POST("/availability", availability.Create)
		authed.DELETE("/availability/:id", availability.Delete)

		authed.GET("/bookings", bookings.List)
		authed.POST("/bookings", bookings.Create)
		authed.DELETE("/bookings/:id", bookings.Delete)

		authed.GET("/types", resources.Types)
	}

	return r
}
