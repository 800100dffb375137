package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/fastygo/cardfolio/api/handler"
)

type Handlers struct {
	Session     *apiHandler.SessionHandler
	Entitlement *apiHandler.EntitlementHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/session", handlers.Session.Current)
	r.DELETE("/api/v1/session", handlers.Session.Logout)
	r.POST("/api/v1/session/signup", handlers.Session.Signup)
	r.POST("/api/v1/session/verify", handlers.Session.Verify)
	r.POST("/api/v1/session/profile", handlers.Session.CompleteProfile)
	r.PATCH("/api/v1/session/profile", handlers.Session.UpdateProfile)
	r.POST("/api/v1/session/plan", handlers.Session.ChangePlan)
	r.DELETE("/api/v1/session/plan", handlers.Session.Downgrade)

	r.GET("/api/v1/entitlements", handlers.Entitlement.Resolve)
	r.GET("/api/v1/urls/{slug}/availability", handlers.Session.URLAvailability)

	return r
}
