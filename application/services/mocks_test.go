package services

import (
	"context"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/domain/events"

	"github.com/stretchr/testify/mock"
)

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Save(ctx context.Context, card *entities.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, userID string, persona valueobjects.Persona, cardID string) (*entities.Card, error) {
	args := m.Called(ctx, userID, persona, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Card), args.Error(1)
}

func (m *MockCardRepository) ListByPersona(ctx context.Context, userID string, persona valueobjects.Persona) ([]*entities.Card, error) {
	args := m.Called(ctx, userID, persona)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Card), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *entities.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, userID string, persona valueobjects.Persona, cardID string) error {
	args := m.Called(ctx, userID, persona, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteBatch(ctx context.Context, userID string, persona valueobjects.Persona, cardIDs []string) error {
	args := m.Called(ctx, userID, persona, cardIDs)
	return args.Error(0)
}

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *entities.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string) (*entities.Collection, error) {
	args := m.Called(ctx, userID, persona, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Collection), args.Error(1)
}

func (m *MockCollectionRepository) ListByPersona(ctx context.Context, userID string, persona valueobjects.Persona) ([]*entities.Collection, error) {
	args := m.Called(ctx, userID, persona)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Rename(ctx context.Context, userID string, persona valueobjects.Persona, collectionID, name string) error {
	args := m.Called(ctx, userID, persona, collectionID, name)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string) error {
	args := m.Called(ctx, userID, persona, collectionID)
	return args.Error(0)
}

func (m *MockCollectionRepository) AddCards(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string, cardIDs []string) error {
	args := m.Called(ctx, userID, persona, collectionID, cardIDs)
	return args.Error(0)
}

func (m *MockCollectionRepository) RemoveCards(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string, cardIDs []string) error {
	args := m.Called(ctx, userID, persona, collectionID, cardIDs)
	return args.Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateFlashcards(ctx context.Context, subject string, count int) ([]ports.QA, error) {
	args := m.Called(ctx, subject, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.QA), args.Error(1)
}

func (m *MockTextGenerator) GenerateTrivia(ctx context.Context, location string) (ports.QA, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(ports.QA), args.Error(1)
}

type MockImageSearcher struct {
	mock.Mock
}

func (m *MockImageSearcher) SearchImage(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}
