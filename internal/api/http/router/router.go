package router

import (
	"net/http"

	"github.com/aegis-auth/aegis-server/internal/api/http/handler"
	"github.com/aegis-auth/aegis-server/internal/api/http/middleware"
	"github.com/aegis-auth/aegis-server/internal/logger"
	"github.com/aegis-auth/aegis-server/internal/model"
)

// Router wires authentication handlers and middleware into an HTTP handler.
type Router struct {
	authService    handler.AuthService
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the route table. Registration and login are open; the
// profile endpoint requires a bearer token.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/register-face", authHandler.RegisterFace)
	mux.HandleFunc("POST /auth/login-face", authHandler.LoginFace)
	mux.Handle("GET /auth/me", authenticate.Handle(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /auth/me/photo", authenticate.Handle(http.HandlerFunc(authHandler.Photo)))

	return logging.Handle(mux)
}
