package main

import (
	"context"
	"log"
	"time"

	"flashcard-backend/infrastructure/config"
	"flashcard-backend/infrastructure/di"
	"flashcard-backend/interfaces/http/rest"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	// chiLambda wraps the Chi router for AWS Lambda integration
	chiLambda *chiadapter.ChiLambdaV2

	// container holds the dependency injection container
	container *di.Container

	// coldStart tracks whether this is a cold start invocation
	coldStart = true

	// coldStartTime records when the cold start began
	coldStartTime time.Time
)

// init runs during cold start
func init() {
	coldStartTime = time.Now()
	log.Println("Lambda cold start initiated")

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router := rest.NewRouter(
		container.Config,
		container.CommandBus,
		container.QueryBus,
		container.GenerationService,
		container.PaymentGateway,
		container.JWTValidator,
		container.IPRateLimiter,
		container.UserRateLimiter,
		container.Logger,
	)

	handler := router.Setup()

	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	log.Printf("Lambda cold start completed in %v", time.Since(coldStartTime))
}

// Handler is the Lambda function handler. The API Gateway JWT authorizer has
// already validated the token before the request reaches this function, so
// the authorizer claims are forwarded as trusted headers.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}

	req.Headers["X-API-Gateway-Authorized"] = "true"

	if authorizer := req.RequestContext.Authorizer; authorizer != nil && authorizer.JWT != nil {
		claims := authorizer.JWT.Claims
		if sub, ok := claims["sub"]; ok {
			req.Headers["X-User-ID"] = sub
		}
		if email, ok := claims["email"]; ok {
			req.Headers["X-User-Email"] = email
		}
	}

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}

	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		coldStart = false
	} else {
		resp.Headers["X-Cold-Start"] = "false"
	}

	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	if err != nil && container != nil && container.Logger != nil {
		container.Logger.Error("Lambda proxy error",
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.Error(err),
		)
	}

	return resp, err
}

func main() {
	lambda.Start(Handler)
}
