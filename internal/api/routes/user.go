package routes

import (
	"Lumen/internal/api/handlers/user"
	"Lumen/internal/api/middleware"
	"Lumen/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers user profile endpoints on the router
func RegisterUserRoutes(r chi.Router, userService users.UserService, authMiddleware *middleware.AuthMiddleware) {
	getUserHandler := user.NewGetUserHandler(userService)
	updateProfileHandler := user.NewUpdateProfileHandler(userService)
	changePasswordHandler := user.NewChangePasswordHandler(userService)
	deleteAccountHandler := user.NewDeleteAccountHandler(userService)

	// Profile mutations must be registered before the wildcard lookup
	r.With(authMiddleware.RequireAuth).Put("/api/users/me/profile", updateProfileHandler.HandleUpdateProfile)
	r.With(authMiddleware.RequireAuth).Put("/api/users/me/password", changePasswordHandler.HandleChangePassword)
	r.With(authMiddleware.RequireAuth).Delete("/api/users/me/account", deleteAccountHandler.HandleDeleteAccount)

	r.Get("/api/users/{id}", getUserHandler.HandleGetUser)
}
