package commands

import (
	"context"
	"errors"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/domain/events"

	"go.uber.org/zap"
)

// DeleteCollectionCommand removes a collection document. The member cards
// survive; any no longer referenced elsewhere show up as unfiled in the card
// listing.
type DeleteCollectionCommand struct {
	UserID       string `json:"user_id" validate:"required"`
	Persona      string `json:"persona" validate:"required,oneof=student traveler"`
	CollectionID string `json:"collection_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteCollectionCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.CollectionID == "" {
		return errors.New("collection ID is required")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// DeleteCollectionHandler handles the DeleteCollectionCommand
type DeleteCollectionHandler struct {
	collections ports.CollectionRepository
	eventBus    ports.EventBus
	logger      *zap.Logger
}

// NewDeleteCollectionHandler creates a new handler instance
func NewDeleteCollectionHandler(
	collections ports.CollectionRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteCollectionHandler {
	return &DeleteCollectionHandler{
		collections: collections,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Handle executes the delete collection command
func (h *DeleteCollectionHandler) Handle(ctx context.Context, cmd DeleteCollectionCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}
	if _, err := h.collections.GetByID(ctx, cmd.UserID, persona, cmd.CollectionID); err != nil {
		return err
	}
	if err := h.collections.Delete(ctx, cmd.UserID, persona, cmd.CollectionID); err != nil {
		return err
	}

	event := events.NewCollectionDeleted(cmd.UserID, persona, cmd.CollectionID)
	if pubErr := h.eventBus.Publish(ctx, event); pubErr != nil {
		h.logger.Warn("Failed to publish collection deleted event", zap.Error(pubErr))
	}

	h.logger.Info("Deleted collection",
		zap.String("userID", cmd.UserID),
		zap.String("collectionID", cmd.CollectionID),
	)
	return nil
}
