package routes

import (
	authhandlers "Lumen/internal/api/handlers/auth"
	"Lumen/internal/api/middleware"
	"Lumen/internal/auth"
	"Lumen/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes registers registration and session endpoints on the router
func RegisterAuthRoutes(r chi.Router, userService users.UserService, tokens *auth.TokenIssuer, authMiddleware *middleware.AuthMiddleware) {
	registerHandler := authhandlers.NewRegisterHandler(userService, tokens)
	loginHandler := authhandlers.NewLoginHandler(userService, tokens)
	meHandler := authhandlers.NewMeHandler(userService, tokens)

	r.Post("/api/auth/register", registerHandler.HandleRegister)
	r.Post("/api/auth/login", loginHandler.HandleLogin)

	r.With(authMiddleware.RequireAuth).Get("/api/auth/me", meHandler.HandleMe)
	r.With(authMiddleware.RequireAuth).Post("/api/auth/refresh", meHandler.HandleRefresh)
}
