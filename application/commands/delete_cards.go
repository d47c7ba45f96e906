package commands

import (
	"context"
	"errors"

	"flashcard-backend/application/ports"
	"flashcard-backend/application/services"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/domain/events"

	"go.uber.org/zap"
)

// DeleteCardsCommand removes a set of card IDs from a collection and deletes
// the card records themselves.
type DeleteCardsCommand struct {
	UserID             string   `json:"user_id" validate:"required"`
	Persona            string   `json:"persona" validate:"required,oneof=student traveler"`
	CardIDs            []string `json:"card_ids" validate:"required,min=1"`
	SourceCollectionID string   `json:"source_collection_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteCardsCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if len(cmd.CardIDs) == 0 {
		return errors.New("at least one card ID is required")
	}
	if cmd.SourceCollectionID == "" {
		return errors.New("source collection ID is required")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// DeleteCardsHandler handles the DeleteCardsCommand
type DeleteCardsHandler struct {
	reconciler *services.Reconciler
	eventBus   ports.EventBus
	logger     *zap.Logger
}

// NewDeleteCardsHandler creates a new handler instance
func NewDeleteCardsHandler(
	reconciler *services.Reconciler,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteCardsHandler {
	return &DeleteCardsHandler{
		reconciler: reconciler,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Handle executes the delete cards command
func (h *DeleteCardsHandler) Handle(ctx context.Context, cmd DeleteCardsCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}

	err = h.reconciler.DeleteCards(ctx, cmd.UserID, persona, cmd.CardIDs, cmd.SourceCollectionID)
	if err != nil {
		return err
	}

	event := events.NewCardsDeleted(cmd.UserID, persona, cmd.CardIDs, cmd.SourceCollectionID)
	if pubErr := h.eventBus.Publish(ctx, event); pubErr != nil {
		h.logger.Warn("Failed to publish delete event", zap.Error(pubErr))
	}
	return nil
}
