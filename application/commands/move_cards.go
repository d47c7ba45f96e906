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

// MoveCardsCommand moves a set of card IDs from one collection into another.
// Exactly one of TargetCollectionID or NewCollectionName drives the target;
// when NewCollectionName is set the caller supplies the new collection's ID
// in TargetCollectionID.
type MoveCardsCommand struct {
	UserID             string   `json:"user_id" validate:"required"`
	Persona            string   `json:"persona" validate:"required,oneof=student traveler"`
	CardIDs            []string `json:"card_ids" validate:"required,min=1"`
	SourceCollectionID string   `json:"source_collection_id" validate:"required"`
	TargetCollectionID string   `json:"target_collection_id" validate:"required"`
	NewCollectionName  string   `json:"new_collection_name"`
}

// Validate validates the command
func (cmd MoveCardsCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if len(cmd.CardIDs) == 0 {
		return errors.New("at least one card ID is required")
	}
	if cmd.SourceCollectionID == "" {
		return errors.New("source collection ID is required")
	}
	if cmd.TargetCollectionID == "" {
		return errors.New("target collection ID is required")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// MoveCardsHandler handles the MoveCardsCommand
type MoveCardsHandler struct {
	reconciler *services.Reconciler
	eventBus   ports.EventBus
	logger     *zap.Logger
}

// NewMoveCardsHandler creates a new handler instance
func NewMoveCardsHandler(
	reconciler *services.Reconciler,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *MoveCardsHandler {
	return &MoveCardsHandler{
		reconciler: reconciler,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Handle executes the move cards command
func (h *MoveCardsHandler) Handle(ctx context.Context, cmd MoveCardsCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}

	err = h.reconciler.MoveCards(ctx, cmd.UserID, persona, cmd.CardIDs,
		cmd.SourceCollectionID, cmd.TargetCollectionID, cmd.NewCollectionName)
	if err != nil {
		return err
	}

	event := events.NewCardsMoved(cmd.UserID, persona, cmd.CardIDs,
		cmd.SourceCollectionID, cmd.TargetCollectionID)
	if pubErr := h.eventBus.Publish(ctx, event); pubErr != nil {
		h.logger.Warn("Failed to publish move event", zap.Error(pubErr))
	}
	return nil
}
