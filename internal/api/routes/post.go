package routes

import (
	"Lumen/internal/api/handlers/comments"
	"Lumen/internal/api/handlers/post"
	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	// Initialize handlers
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)
	userPostsHandler := post.NewUserPostsHandler(service)
	createCommentHandler := comments.NewCreateCommentHandler(service)
	deleteCommentHandler := comments.NewDeleteCommentHandler(service)

	// Query endpoints - public reads
	r.Get("/api/posts", listHandler.HandleList)
	r.Get("/api/posts/{id}", getHandler.HandleGet)
	r.Get("/api/posts/user/{userId}", userPostsHandler.HandleGetUserPosts)

	// Procedure endpoints - require authentication
	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Put("/api/posts/{id}", updateHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}", deleteHandler.HandleDelete)

	// Like toggle - same endpoint likes and unlikes
	r.With(authMiddleware.RequireAuth).Put("/api/posts/{id}/like", likeHandler.HandleToggleLike)

	// Embedded comments
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/comments", createCommentHandler.HandleCreateComment)
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}/comments/{commentId}", deleteCommentHandler.HandleDeleteComment)
}
