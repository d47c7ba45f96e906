package di

import (
	"flashcard-backend/application/commands/bus"
	"flashcard-backend/application/ports"
	querybus "flashcard-backend/application/queries/bus"
	"flashcard-backend/application/services"
	"flashcard-backend/infrastructure/config"
	"flashcard-backend/pkg/auth"
	"flashcard-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	CardRepo          ports.CardRepository
	CollectionRepo    ports.CollectionRepository
	EventBus          ports.EventBus
	CommandBus        *bus.CommandBus
	QueryBus          *querybus.QueryBus
	Metrics           *observability.Metrics
	Tracer            *observability.Tracer
	TextGenerator     ports.TextGenerator
	ImageSearcher     ports.ImageSearcher
	PaymentGateway    ports.PaymentGateway
	Reconciler        *services.Reconciler
	GenerationService *services.GenerationService
	JWTValidator      *auth.JWTValidator
	IPRateLimiter     *auth.IPRateLimiter
	UserRateLimiter   *auth.UserRateLimiter
}

// Shutdown flushes buffered log entries. Call on process exit.
func (c *Container) Shutdown() {
	_ = c.Logger.Sync()
}
