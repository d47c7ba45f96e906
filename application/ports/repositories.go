package ports

import (
	"context"

	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
)

// CardRepository defines the interface for card persistence.
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type CardRepository interface {
	// Save persists a card record
	Save(ctx context.Context, card *entities.Card) error

	// GetByID retrieves a card. Returns a typed not-found error when the
	// record does not exist.
	GetByID(ctx context.Context, userID string, persona valueobjects.Persona, cardID string) (*entities.Card, error)

	// ListByPersona retrieves all cards in a user+persona namespace
	ListByPersona(ctx context.Context, userID string, persona valueobjects.Persona) ([]*entities.Card, error)

	// Update persists field-level edits to an existing card
	Update(ctx context.Context, card *entities.Card) error

	// Delete removes a card record
	Delete(ctx context.Context, userID string, persona valueobjects.Persona, cardID string) error

	// DeleteBatch removes multiple card records
	DeleteBatch(ctx context.Context, userID string, persona valueobjects.Persona, cardIDs []string) error
}

// CollectionRepository defines the interface for collection persistence.
// AddCards and RemoveCards are the per-document atomic membership
// primitives; they are atomic individually but nothing composes them across
// documents.
type CollectionRepository interface {
	// Create persists a new collection document
	Create(ctx context.Context, collection *entities.Collection) error

	// GetByID retrieves a collection. Returns a typed not-found error when
	// the document does not exist.
	GetByID(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string) (*entities.Collection, error)

	// ListByPersona retrieves all collections in a user+persona namespace
	ListByPersona(ctx context.Context, userID string, persona valueobjects.Persona) ([]*entities.Collection, error)

	// Rename updates the display name of an existing collection
	Rename(ctx context.Context, userID string, persona valueobjects.Persona, collectionID, name string) error

	// Delete removes a collection document. Member cards survive.
	Delete(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string) error

	// AddCards atomically unions card IDs into the collection's membership set
	AddCards(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string, cardIDs []string) error

	// RemoveCards atomically removes card IDs from the collection's
	// membership set. Removing IDs that are not members is a no-op.
	RemoveCards(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string, cardIDs []string) error
}
