package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint into public, authenticated and admin
// groups. Public reads still run the optional authenticator so payloads that
// vary with the caller (profile visibility, like/save state) see the account
// when a token is present.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticateOptional)

		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/blogs", handlers.blogHandler.getAllBlogs())
		r.Get("/blogs/trending", handlers.blogHandler.getTrending())
		r.Get("/blogs/{slug}", handlers.blogHandler.getBlogBySlug())

		r.Get("/comments/blog/{blogID}", handlers.commentHandler.getForBlog())
		r.Get("/comments/{commentID}/replies", handlers.commentHandler.getReplies())

		r.Get("/users/profile/{username}", handlers.userHandler.getProfile())
		r.Get("/users/{userID}/followers", handlers.userHandler.getFollowers())
		r.Get("/users/{userID}/following", handlers.userHandler.getFollowing())
		r.Get("/users/search", handlers.userHandler.search())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/auth/logout", handlers.authHandler.logout())
		r.Get("/auth/profile", handlers.authHandler.getProfile())
		r.Put("/auth/profile", handlers.authHandler.updateProfile())
		r.Put("/auth/change-password", handlers.authHandler.changePassword())
		r.Delete("/auth/delete-account", handlers.authHandler.deleteAccount())

		r.Post("/blogs", handlers.blogHandler.createBlog())
		r.Get("/blogs/saved/me", handlers.blogHandler.getSaved())
		r.Put("/blogs/update/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/blogs/delete/{blogID}", handlers.blogHandler.deleteBlog())
		r.Post("/blogs/{blogID}/like", handlers.blogHandler.toggleLike())
		r.Post("/blogs/{blogID}/save", handlers.blogHandler.toggleSave())

		r.Post("/comments", handlers.commentHandler.createComment())
		r.Put("/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())
		r.Post("/comments/{commentID}/like", handlers.commentHandler.toggleLike())

		r.Post("/users/follow/{userID}", handlers.userHandler.follow())
		r.Post("/users/unfollow/{userID}", handlers.userHandler.unfollow())
		r.Get("/users/suggestions", handlers.userHandler.getSuggestions())
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireAdmin)

		r.Get("/admin/users", handlers.adminHandler.getAllUsers())
		r.Delete("/admin/user/{userID}/delete", handlers.adminHandler.deleteUser())
		r.Get("/admin/blogs", handlers.adminHandler.getAllBlogs())
		r.Delete("/admin/blog/{blogID}/delete", handlers.adminHandler.deleteBlog())
		r.Patch("/admin/user/{userID}/toggle-role", handlers.adminHandler.toggleRole())
	})
}
