package commands

import (
	"context"
	"errors"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/domain/events"

	"go.uber.org/zap"
)

// MaxCollectionNameLength bounds user-supplied collection names
const MaxCollectionNameLength = 100

// CreateCollectionCommand creates a named collection. The caller supplies
// the new collection's ID so the outcome is known without a return channel.
// Duplicate display names are permitted; identity is the ID alone.
type CreateCollectionCommand struct {
	CollectionID string   `json:"collection_id" validate:"required"`
	UserID       string   `json:"user_id" validate:"required"`
	Persona      string   `json:"persona" validate:"required,oneof=student traveler"`
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	CardIDs      []string `json:"card_ids"`
}

// Validate validates the command
func (cmd CreateCollectionCommand) Validate() error {
	if cmd.CollectionID == "" {
		return errors.New("collection ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Name == "" {
		return errors.New("collection name is required")
	}
	if len(cmd.Name) > MaxCollectionNameLength {
		return errors.New("collection name exceeds maximum length")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// CreateCollectionHandler handles the CreateCollectionCommand
type CreateCollectionHandler struct {
	collections ports.CollectionRepository
	eventBus    ports.EventBus
	logger      *zap.Logger
}

// NewCreateCollectionHandler creates a new handler instance
func NewCreateCollectionHandler(
	collections ports.CollectionRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CreateCollectionHandler {
	return &CreateCollectionHandler{
		collections: collections,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Handle executes the create collection command
func (h *CreateCollectionHandler) Handle(ctx context.Context, cmd CreateCollectionCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}

	collection, err := entities.NewCollectionWithID(cmd.CollectionID, cmd.UserID, persona, cmd.Name, cmd.CardIDs)
	if err != nil {
		return err
	}
	if err := h.collections.Create(ctx, collection); err != nil {
		return err
	}

	event := events.NewCollectionCreated(cmd.UserID, persona, collection.ID(), collection.Name())
	if pubErr := h.eventBus.Publish(ctx, event); pubErr != nil {
		h.logger.Warn("Failed to publish collection created event", zap.Error(pubErr))
	}

	h.logger.Info("Created collection",
		zap.String("userID", cmd.UserID),
		zap.String("collectionID", collection.ID()),
	)
	return nil
}
