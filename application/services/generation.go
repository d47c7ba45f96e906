package services

import (
	"context"
	"time"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/domain/events"
	"flashcard-backend/pkg/observability"

	"go.uber.org/zap"
)

const (
	// DefaultCardCount is the batch size when the caller does not ask for one
	DefaultCardCount = 5
	// MaxCardCount caps a single generation request
	MaxCardCount = 20
)

// GenerationService orchestrates one generation request: ask the text
// gateway for question/answer pairs, fetch one background image for the
// batch, persist the cards and file them into the requested collection.
type GenerationService struct {
	textGen    ports.TextGenerator
	images     ports.ImageSearcher
	cards      ports.CardRepository
	reconciler *Reconciler
	eventBus   ports.EventBus
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	textGen ports.TextGenerator,
	images ports.ImageSearcher,
	cards ports.CardRepository,
	reconciler *Reconciler,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		textGen:    textGen,
		images:     images,
		cards:      cards,
		reconciler: reconciler,
		eventBus:   eventBus,
		metrics:    metrics,
		logger:     logger,
	}
}

// GenerateInput is one generation request. Topic is the study subject for
// students and the location for travelers.
type GenerateInput struct {
	UserID         string
	Persona        valueobjects.Persona
	Topic          string
	Count          int
	CollectionName string
}

// GeneratedCard is one card as returned to the caller
type GeneratedCard struct {
	ID              string `json:"id"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	BackgroundImage string `json:"backgroundImage"`
}

// GenerateResult is the outcome of a generation request
type GenerateResult struct {
	Flashcards   []GeneratedCard
	CardIDs      []string
	CollectionID string
}

// Generate produces, persists and files a batch of cards. Students get Count
// cards about the topic; travelers get a single trivia card. Image lookup
// failure degrades to cards without a background, never an error.
func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	start := time.Now()

	count := in.Count
	if count <= 0 {
		count = DefaultCardCount
	}
	if count > MaxCardCount {
		count = MaxCardCount
	}

	image := s.lookupImage(ctx, in.Topic)

	var (
		pairs []ports.QA
		err   error
	)
	if in.Persona == valueobjects.PersonaTraveler {
		var qa ports.QA
		qa, err = s.textGen.GenerateTrivia(ctx, in.Topic)
		pairs = []ports.QA{qa}
	} else {
		pairs, err = s.textGen.GenerateFlashcards(ctx, in.Topic, count)
	}
	if err != nil {
		s.metrics.RecordGeneration(ctx, in.Persona.String(), 0, time.Since(start), err)
		return nil, err
	}

	result := &GenerateResult{
		Flashcards: make([]GeneratedCard, 0, len(pairs)),
		CardIDs:    make([]string, 0, len(pairs)),
	}
	for _, qa := range pairs {
		card, cardErr := entities.NewCard(in.UserID, in.Persona, qa.Question, qa.Answer, image)
		if cardErr != nil {
			s.logger.Warn("Skipping unusable generated pair",
				zap.String("userID", in.UserID),
				zap.Error(cardErr),
			)
			continue
		}
		if saveErr := s.cards.Save(ctx, card); saveErr != nil {
			s.metrics.RecordGeneration(ctx, in.Persona.String(), 0, time.Since(start), saveErr)
			return nil, saveErr
		}
		result.Flashcards = append(result.Flashcards, GeneratedCard{
			ID:              card.ID(),
			Question:        card.Question(),
			Answer:          card.Answer(),
			BackgroundImage: card.Picture(),
		})
		result.CardIDs = append(result.CardIDs, card.ID())
	}

	collectionID, err := s.reconciler.AttachNewCards(ctx, in.UserID, in.Persona, result.CardIDs, in.CollectionName)
	if err != nil {
		s.metrics.RecordGeneration(ctx, in.Persona.String(), len(result.CardIDs), time.Since(start), err)
		return nil, err
	}
	result.CollectionID = collectionID

	event := events.NewCardsGenerated(in.UserID, in.Persona, in.Topic, result.CardIDs, collectionID)
	if pubErr := s.eventBus.Publish(ctx, event); pubErr != nil {
		s.logger.Warn("Failed to publish generation event", zap.Error(pubErr))
	}

	s.metrics.RecordGeneration(ctx, in.Persona.String(), len(result.CardIDs), time.Since(start), nil)
	s.logger.Info("Generated cards",
		zap.String("userID", in.UserID),
		zap.String("persona", in.Persona.String()),
		zap.String("collectionID", collectionID),
		zap.Int("cardCount", len(result.CardIDs)),
	)
	return result, nil
}

// TriviaResult is one unpersisted trivia pair with its background image
type TriviaResult struct {
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	BackgroundImage string `json:"backgroundImage"`
}

// Trivia produces a single trivia pair about a location without persisting
// anything.
func (s *GenerationService) Trivia(ctx context.Context, location string) (*TriviaResult, error) {
	qa, err := s.textGen.GenerateTrivia(ctx, location)
	if err != nil {
		return nil, err
	}
	return &TriviaResult{
		Question:        qa.Question,
		Answer:          qa.Answer,
		BackgroundImage: s.lookupImage(ctx, location),
	}, nil
}

func (s *GenerationService) lookupImage(ctx context.Context, query string) string {
	image, err := s.images.SearchImage(ctx, query)
	if err != nil {
		s.logger.Warn("Image lookup failed, continuing without background",
			zap.String("query", query),
			zap.Error(err),
		)
		return ""
	}
	return image
}
