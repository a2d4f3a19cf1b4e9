package routes

import (
	"net/http"

	"github.com/unisolve/backend/internal/app"
	"github.com/unisolve/backend/internal/handler"
	"github.com/unisolve/backend/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(a.AuthService)
	verification := handler.NewVerificationHandler(a.VerificationService)
	post := handler.NewPostHandler(a.PostService, a.AuthService, a.Location)
	comment := handler.NewCommentHandler(a.CommentService)
	user := handler.NewUserHandler(a.UserService, a.Location)
	university := handler.NewUniversityHandler(a.UniversityService)

	// Credential and mail endpoints are rate limited per IP
	rateLimiter := middleware.RateLimitAuth()
	requireAuth := middleware.RequireAuth(a.AuthService)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", handler.Healthz)

	// Public
	mux.HandleFunc("POST /login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("POST /existuser", auth.ExistUser)
	mux.HandleFunc("POST /send-code", rateLimiter(verification.SendCode))
	mux.HandleFunc("POST /verify-code", verification.VerifyCode)
	mux.HandleFunc("GET /community", post.Community)
	mux.HandleFunc("GET /universities", university.List)

	// Token is validated inside the handler, and only for private posts
	mux.HandleFunc("GET /post/{id}", post.Get)

	// Protected
	mux.HandleFunc("POST /questions", requireAuth(post.Create))
	mux.HandleFunc("GET /history", requireAuth(post.History))
	mux.HandleFunc("POST /comment", requireAuth(comment.Create))
	mux.HandleFunc("GET /userinfo", requireAuth(user.Info))
	mux.HandleFunc("PUT /update_user", requireAuth(user.Update))
	mux.HandleFunc("DELETE /delete_user", requireAuth(user.Delete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS,
		middleware.RequestLogging,
	)
}
