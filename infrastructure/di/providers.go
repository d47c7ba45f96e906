package di

import (
	"context"
	"fmt"

	"flashcard-backend/application/commands"
	"flashcard-backend/application/commands/bus"
	"flashcard-backend/application/ports"
	"flashcard-backend/application/queries"
	querybus "flashcard-backend/application/queries/bus"
	queries_handlers "flashcard-backend/application/queries/handlers"
	"flashcard-backend/application/services"
	"flashcard-backend/infrastructure/config"
	"flashcard-backend/infrastructure/gateways/openrouter"
	"flashcard-backend/infrastructure/gateways/stripe"
	"flashcard-backend/infrastructure/gateways/unsplash"
	"flashcard-backend/infrastructure/messaging/eventbridge"
	"flashcard-backend/infrastructure/persistence/dynamodb"
	"flashcard-backend/pkg/auth"
	"flashcard-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client, or nil when metrics
// are disabled
func ProvideCloudWatchClient(awsCfg aws.Config, cfg *config.Config) *awscloudwatch.Client {
	if !cfg.EnableMetrics {
		return nil
	}
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCardRepository creates a card repository
func ProvideCardRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CardRepository {
	return dynamodb.NewCardRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideCollectionRepository creates a collection repository
func ProvideCollectionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CollectionRepository {
	return dynamodb.NewCollectionRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventBus creates the EventBridge-backed event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics recorder
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	return observability.NewMetrics("FlashcardBackend", client)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("flashcard-backend")
}

// ProvideTextGenerator creates the OpenRouter text-generation gateway
func ProvideTextGenerator(cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.TextGenerator {
	return openrouter.NewClient(openrouter.Config{
		APIKey:   cfg.OpenRouterAPIKey,
		Endpoint: cfg.OpenRouterEndpoint,
		Referer:  cfg.AppURL,
		AppTitle: "Flashcard App",
		Timeout:  cfg.GatewayTimeout,
	}, tracer, logger)
}

// ProvideImageSearcher creates the Unsplash image-search gateway
func ProvideImageSearcher(cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.ImageSearcher {
	return unsplash.NewClient(unsplash.Config{
		AccessKey: cfg.UnsplashAccessKey,
		Endpoint:  cfg.UnsplashEndpoint,
	}, tracer, logger)
}

// ProvidePaymentGateway creates the Stripe payment gateway
func ProvidePaymentGateway(cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.PaymentGateway {
	return stripe.NewClient(stripe.Config{
		SecretKey: cfg.StripeSecretKey,
		Endpoint:  cfg.StripeEndpoint,
	}, tracer, logger)
}

// ProvideReconciler creates the reconciliation service
func ProvideReconciler(collections ports.CollectionRepository, cards ports.CardRepository, logger *zap.Logger) *services.Reconciler {
	return services.NewReconciler(collections, cards, logger)
}

// ProvideGenerationService creates the generation service
func ProvideGenerationService(
	textGen ports.TextGenerator,
	images ports.ImageSearcher,
	cards ports.CardRepository,
	reconciler *services.Reconciler,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.GenerationService {
	return services.NewGenerationService(textGen, images, cards, reconciler, eventBus, metrics, logger)
}

// ProvideJWTValidator creates the JWT validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	var audience []string
	if cfg.JWTAudience != "" {
		audience = []string{cfg.JWTAudience}
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      audience,
	})
}

// ProvideIPRateLimiter creates the per-IP rate limiter
func ProvideIPRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	return auth.NewIPRateLimiter(cfg.IPRateLimit)
}

// ProvideUserRateLimiter creates the per-user rate limiter
func ProvideUserRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	return auth.NewUserRateLimiter(cfg.UserRateLimit)
}

// CommandHandlerAdapter adapts typed command handlers to the bus interface
type CommandHandlerAdapter struct {
	handler func(ctx context.Context, cmd bus.Command) error
}

// Handle implements bus.CommandHandler
func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// QueryHandlerAdapter adapts typed query handlers to the bus interface
type QueryHandlerAdapter struct {
	handler func(ctx context.Context, query querybus.Query) (interface{}, error)
}

// Handle implements querybus.QueryHandler
func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideCommandBus creates a command bus with all mutation handlers
// registered
func ProvideCommandBus(
	cardRepo ports.CardRepository,
	collectionRepo ports.CollectionRepository,
	reconciler *services.Reconciler,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()
	logged := bus.LoggingMiddleware(logger)

	moveHandler := commands.NewMoveCardsHandler(reconciler, eventBus, logger)
	commandBus.Register(commands.MoveCardsCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			moveCmd, ok := cmd.(commands.MoveCardsCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return moveHandler.Handle(ctx, moveCmd)
		},
	}))

	deleteCardsHandler := commands.NewDeleteCardsHandler(reconciler, eventBus, logger)
	commandBus.Register(commands.DeleteCardsCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteCardsCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteCardsHandler.Handle(ctx, deleteCmd)
		},
	}))

	createCollectionHandler := commands.NewCreateCollectionHandler(collectionRepo, eventBus, logger)
	commandBus.Register(commands.CreateCollectionCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateCollectionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return createCollectionHandler.Handle(ctx, createCmd)
		},
	}))

	renameHandler := commands.NewRenameCollectionHandler(collectionRepo, logger)
	commandBus.Register(commands.RenameCollectionCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			renameCmd, ok := cmd.(commands.RenameCollectionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return renameHandler.Handle(ctx, renameCmd)
		},
	}))

	deleteCollectionHandler := commands.NewDeleteCollectionHandler(collectionRepo, eventBus, logger)
	commandBus.Register(commands.DeleteCollectionCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteCollectionCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteCollectionHandler.Handle(ctx, deleteCmd)
		},
	}))

	updateCardHandler := commands.NewUpdateCardHandler(cardRepo, logger)
	commandBus.Register(commands.UpdateCardCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateCardCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return updateCardHandler.Handle(ctx, updateCmd)
		},
	}))

	deleteCardHandler := commands.NewDeleteCardHandler(cardRepo, logger)
	commandBus.Register(commands.DeleteCardCommand{}, logged(&CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteCardCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteCardHandler.Handle(ctx, deleteCmd)
		},
	}))

	return commandBus
}

// ProvideQueryBus creates a query bus with all read handlers registered
func ProvideQueryBus(
	cardRepo ports.CardRepository,
	collectionRepo ports.CollectionRepository,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	getCardHandler := queries_handlers.NewGetCardHandler(cardRepo, logger)
	queryBus.Register(queries.GetCardQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetCardQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getCardHandler.Handle(ctx, getQuery)
		},
	})

	listCardsHandler := queries_handlers.NewListCardsHandler(cardRepo, logger)
	queryBus.Register(queries.ListCardsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListCardsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCardsHandler.Handle(ctx, listQuery)
		},
	})

	getCollectionHandler := queries_handlers.NewGetCollectionHandler(collectionRepo, cardRepo, logger)
	queryBus.Register(queries.GetCollectionQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetCollectionQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getCollectionHandler.Handle(ctx, getQuery)
		},
	})

	listCollectionsHandler := queries_handlers.NewListCollectionsHandler(collectionRepo, logger)
	queryBus.Register(queries.ListCollectionsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListCollectionsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCollectionsHandler.Handle(ctx, listQuery)
		},
	})

	return queryBus
}
