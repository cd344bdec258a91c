package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/makingbetter/serveconnect-backend/internal/auth"
	bookingHttp "github.com/makingbetter/serveconnect-backend/internal/booking/http"
	catalogHttp "github.com/makingbetter/serveconnect-backend/internal/catalog/http"
	contactHttp "github.com/makingbetter/serveconnect-backend/internal/contact/http"
	messageHttp "github.com/makingbetter/serveconnect-backend/internal/message/http"
	reviewHttp "github.com/makingbetter/serveconnect-backend/internal/review/http"
	userHttp "github.com/makingbetter/serveconnect-backend/internal/user/http"
	wizardHttp "github.com/makingbetter/serveconnect-backend/internal/wizard/http"
)

// Handlers bundles the per-module HTTP handlers the router wires up.
type Handlers struct {
	User    *userHttp.Handler
	Catalog *catalogHttp.Handler
	Wizard  *wizardHttp.Handler
	Booking *bookingHttp.Handler
	Review  *reviewHttp.Handler
	Message *messageHttp.Handler
	Contact *contactHttp.Handler
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for the
// individual modules.
func NewRouter(h Handlers, jwtManager *auth.JWTManager, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware:
	// - Logger: logs request information to the console.
	// - Recovery: captures panics and returns a 500 instead of crashing.
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// authMiddleware validates the JWT; adminMiddleware further checks the
	// role claim.
	authMiddleware := auth.AuthRequired(jwtManager)
	adminMiddleware := auth.RequireAdmin()

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, h.User, authMiddleware, adminMiddleware)
		catalogHttp.RegisterRoutes(v1, h.Catalog, authMiddleware, adminMiddleware)
		wizardHttp.RegisterRoutes(v1, h.Wizard, authMiddleware)
		bookingHttp.RegisterRoutes(v1, h.Booking, authMiddleware)
		reviewHttp.RegisterRoutes(v1, h.Review, authMiddleware)
		messageHttp.RegisterRoutes(v1, h.Message, authMiddleware)
		contactHttp.RegisterRoutes(v1, h.Contact)
	}

	return r
}
