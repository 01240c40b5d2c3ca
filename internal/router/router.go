// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/handler"
	"github.com/iliyamo/social-feed-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the application endpoints. The credential endpoints
// (register and login) run behind the rate limiter; the public feed listing
// runs behind the response cache; every mutating post endpoint and the
// current-user lookup run behind the token gate, so no handler on those
// routes executes without a verified identity.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, p *handler.PostHandler, ct *handler.ContactHandler,
	jwtSecret string, limiter, feedCache echo.MiddlewareFunc) {

	gate := middleware.TokenAuth(jwtSecret)

	// Registration issues a token itself, so it sits outside the gate.
	e.POST("/api/users", a.Register, limiter)
	e.POST("/api/auth", a.Login, limiter)
	e.GET("/api/auth", a.Me, gate)

	posts := e.Group("/api/posts")
	posts.GET("", p.List, feedCache)
	posts.GET("/:id", p.Get)
	posts.POST("", p.Create, gate)
	posts.DELETE("/:id", p.Delete, gate)
	posts.PUT("/like/:id", p.Like, gate)
	posts.PUT("/unlike/:id", p.Unlike, gate)
	posts.POST("/comment/:id", p.Comment, gate)

	e.POST("/api/contact", ct.Submit)
}
