package rest

import (
	"net/http"

	"flashcard-backend/application/commands/bus"
	"flashcard-backend/application/ports"
	querybus "flashcard-backend/application/queries/bus"
	"flashcard-backend/application/services"
	"flashcard-backend/infrastructure/config"
	"flashcard-backend/interfaces/http/rest/handlers"
	"flashcard-backend/interfaces/http/rest/middleware"
	"flashcard-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	generation   *services.GenerationService
	payments     ports.PaymentGateway
	jwtValidator *auth.JWTValidator
	ipLimiter    *auth.IPRateLimiter
	userLimiter  *auth.UserRateLimiter
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	generation *services.GenerationService,
	payments ports.PaymentGateway,
	jwtValidator *auth.JWTValidator,
	ipLimiter *auth.IPRateLimiter,
	userLimiter *auth.UserRateLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		commandBus:   commandBus,
		queryBus:     queryBus,
		generation:   generation,
		payments:     payments,
		jwtValidator: jwtValidator,
		ipLimiter:    ipLimiter,
		userLimiter:  userLimiter,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{rt.cfg.AppURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.IsLambda {
			// API Gateway has already verified the token
			r.Use(middleware.AuthenticateForLambda(rt.userLimiter, rt.logger))
		} else {
			r.Use(middleware.Authenticate(rt.jwtValidator, rt.ipLimiter, rt.userLimiter, rt.logger))
		}

		generationHandler := handlers.NewGenerationHandler(rt.generation, rt.payments, rt.logger)
		r.Post("/flashcards", generationHandler.Generate)
		r.Post("/trivia", generationHandler.Trivia)
		r.Post("/checkout", generationHandler.Checkout)

		// Card endpoints
		r.Route("/cards", func(r chi.Router) {
			cardHandler := handlers.NewCardHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/", cardHandler.ListCards)
			r.Get("/{cardID}", cardHandler.GetCard)
			r.Put("/{cardID}", cardHandler.UpdateCard)
			r.Delete("/{cardID}", cardHandler.DeleteCard)
		})

		// Collection endpoints
		r.Route("/collections", func(r chi.Router) {
			collectionHandler := handlers.NewCollectionHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/", collectionHandler.ListCollections)
			r.Post("/", collectionHandler.CreateCollection)
			r.Get("/{collectionID}", collectionHandler.GetCollection)
			r.Put("/{collectionID}", collectionHandler.RenameCollection)
			r.Delete("/{collectionID}", collectionHandler.DeleteCollection)
			r.Post("/{collectionID}/move", collectionHandler.MoveCards)
			r.Post("/{collectionID}/delete-cards", collectionHandler.DeleteCards)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
