package services

import (
	"context"
	"testing"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	pkgerrors "flashcard-backend/pkg/errors"
	"flashcard-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newGenerationService(
	textGen *MockTextGenerator,
	images *MockImageSearcher,
	cards *MockCardRepository,
	collections *MockCollectionRepository,
	eventBus *MockEventBus,
) *GenerationService {
	logger := zap.NewNop()
	reconciler := NewReconciler(collections, cards, logger)
	metrics := observability.NewMetrics("test", nil)
	return NewGenerationService(textGen, images, cards, reconciler, eventBus, metrics, logger)
}

func TestGenerationService_Generate_StudentBatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTextGen := new(MockTextGenerator)
	mockImages := new(MockImageSearcher)
	mockCards := new(MockCardRepository)
	mockCollections := new(MockCollectionRepository)
	mockEventBus := new(MockEventBus)
	persona := valueobjects.PersonaStudent

	mockImages.On("SearchImage", ctx, "photosynthesis").Return("https://images.example/leaf.jpg", nil)
	mockTextGen.On("GenerateFlashcards", ctx, "photosynthesis", 2).Return([]ports.QA{
		{Question: "What pigment absorbs light?", Answer: "Chlorophyll"},
		{Question: "Where does it occur?", Answer: "Chloroplasts"},
	}, nil)
	mockCards.On("Save", ctx, mock.AnythingOfType("*entities.Card")).Return(nil).Twice()
	mockCollections.On("GetByID", ctx, "user123", persona, entities.DefaultCollectionID).
		Return(nil, pkgerrors.NewNotFoundError("collection"))
	mockCollections.On("Create", ctx, mock.AnythingOfType("*entities.Collection")).Return(nil)
	mockEventBus.On("Publish", ctx, mock.Anything).Return(nil)

	svc := newGenerationService(mockTextGen, mockImages, mockCards, mockCollections, mockEventBus)

	// Act
	result, err := svc.Generate(ctx, GenerateInput{
		UserID:  "user123",
		Persona: persona,
		Topic:   "photosynthesis",
		Count:   2,
	})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, result.Flashcards, 2)
	assert.Len(t, result.CardIDs, 2)
	assert.Equal(t, entities.DefaultCollectionID, result.CollectionID)
	for _, card := range result.Flashcards {
		assert.NotEmpty(t, card.ID)
		assert.Equal(t, "https://images.example/leaf.jpg", card.BackgroundImage)
	}
	mockCards.AssertExpectations(t)
	mockCollections.AssertExpectations(t)
}

func TestGenerationService_Generate_TravelerSingleTrivia(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTextGen := new(MockTextGenerator)
	mockImages := new(MockImageSearcher)
	mockCards := new(MockCardRepository)
	mockCollections := new(MockCollectionRepository)
	mockEventBus := new(MockEventBus)
	persona := valueobjects.PersonaTraveler

	mockImages.On("SearchImage", ctx, "Lisbon").Return("https://images.example/lisbon.jpg", nil)
	mockTextGen.On("GenerateTrivia", ctx, "Lisbon").Return(ports.QA{
		Question: "What river meets the sea at Lisbon?",
		Answer:   "The Tagus",
	}, nil)
	mockCards.On("Save", ctx, mock.AnythingOfType("*entities.Card")).Return(nil).Once()
	mockCollections.On("GetByID", ctx, "user123", persona, entities.DefaultCollectionID).
		Return(nil, pkgerrors.NewNotFoundError("collection"))
	mockCollections.On("Create", ctx, mock.AnythingOfType("*entities.Collection")).Return(nil)
	mockEventBus.On("Publish", ctx, mock.Anything).Return(nil)

	svc := newGenerationService(mockTextGen, mockImages, mockCards, mockCollections, mockEventBus)

	// Act
	result, err := svc.Generate(ctx, GenerateInput{
		UserID:  "user123",
		Persona: persona,
		Topic:   "Lisbon",
	})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, result.Flashcards, 1)
	assert.Equal(t, "What river meets the sea at Lisbon?", result.Flashcards[0].Question)
	mockTextGen.AssertNotCalled(t, "GenerateFlashcards", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerationService_Generate_TextGatewayFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTextGen := new(MockTextGenerator)
	mockImages := new(MockImageSearcher)
	mockCards := new(MockCardRepository)
	mockCollections := new(MockCollectionRepository)
	mockEventBus := new(MockEventBus)

	mockImages.On("SearchImage", ctx, "history").Return("", nil)
	mockTextGen.On("GenerateFlashcards", ctx, "history", DefaultCardCount).
		Return(nil, pkgerrors.NewExternalError("openrouter", assert.AnError))

	svc := newGenerationService(mockTextGen, mockImages, mockCards, mockCollections, mockEventBus)

	// Act
	result, err := svc.Generate(ctx, GenerateInput{
		UserID:  "user123",
		Persona: valueobjects.PersonaStudent,
		Topic:   "history",
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	mockCards.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGenerationService_Generate_ImageFailureDegrades(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTextGen := new(MockTextGenerator)
	mockImages := new(MockImageSearcher)
	mockCards := new(MockCardRepository)
	mockCollections := new(MockCollectionRepository)
	mockEventBus := new(MockEventBus)
	persona := valueobjects.PersonaStudent

	mockImages.On("SearchImage", ctx, "algebra").Return("", assert.AnError)
	mockTextGen.On("GenerateFlashcards", ctx, "algebra", DefaultCardCount).Return([]ports.QA{
		{Question: "What is x in x+1=2?", Answer: "1"},
	}, nil)
	mockCards.On("Save", ctx, mock.AnythingOfType("*entities.Card")).Return(nil)
	mockCollections.On("GetByID", ctx, "user123", persona, entities.DefaultCollectionID).
		Return(nil, pkgerrors.NewNotFoundError("collection"))
	mockCollections.On("Create", ctx, mock.AnythingOfType("*entities.Collection")).Return(nil)
	mockEventBus.On("Publish", ctx, mock.Anything).Return(nil)

	svc := newGenerationService(mockTextGen, mockImages, mockCards, mockCollections, mockEventBus)

	// Act
	result, err := svc.Generate(ctx, GenerateInput{
		UserID:  "user123",
		Persona: persona,
		Topic:   "algebra",
	})

	// Assert
	assert.NoError(t, err)
	assert.Len(t, result.Flashcards, 1)
	assert.Empty(t, result.Flashcards[0].BackgroundImage)
}

func TestGenerationService_Trivia_DoesNotPersist(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockTextGen := new(MockTextGenerator)
	mockImages := new(MockImageSearcher)
	mockCards := new(MockCardRepository)
	mockCollections := new(MockCollectionRepository)
	mockEventBus := new(MockEventBus)

	mockTextGen.On("GenerateTrivia", ctx, "Kyoto").Return(ports.QA{
		Question: "How many shrines does Kyoto have?",
		Answer:   "Over 400",
	}, nil)
	mockImages.On("SearchImage", ctx, "Kyoto").Return("https://images.example/kyoto.jpg", nil)

	svc := newGenerationService(mockTextGen, mockImages, mockCards, mockCollections, mockEventBus)

	// Act
	result, err := svc.Trivia(ctx, "Kyoto")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Over 400", result.Answer)
	assert.Equal(t, "https://images.example/kyoto.jpg", result.BackgroundImage)
	mockCards.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockCollections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
