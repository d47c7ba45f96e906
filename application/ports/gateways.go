package ports

import (
	"context"

	"flashcard-backend/domain/events"
)

// QA is one question/answer pair produced by the text-generation gateway
type QA struct {
	Question string
	Answer   string
}

// TextGenerator defines the interface to the hosted text-generation service.
// Transport and non-2xx failures surface as errors; malformed or empty model
// output never does - implementations degrade to a single fallback pair
// instead.
type TextGenerator interface {
	// GenerateFlashcards produces count question/answer pairs about a subject
	GenerateFlashcards(ctx context.Context, subject string, count int) ([]QA, error)

	// GenerateTrivia produces a single trivia pair about a location
	GenerateTrivia(ctx context.Context, location string) (QA, error)
}

// ImageSearcher defines the interface to the hosted image-search service
type ImageSearcher interface {
	// SearchImage returns the URL of one image matching the query
	SearchImage(ctx context.Context, query string) (string, error)
}

// PaymentGateway defines the interface to the hosted payment service
type PaymentGateway interface {
	// CreateCheckoutSession creates a subscription checkout session and
	// returns its identifier. Redirect URLs are derived from origin.
	CreateCheckoutSession(ctx context.Context, origin string) (string, error)
}

// EventBus publishes domain events to interested consumers. Publishing is
// fire-and-forget: failures are logged by callers, never propagated.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
