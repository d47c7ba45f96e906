package commands

import (
	"context"
	"errors"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// DeleteCardCommand removes a single card record. Collection membership is
// not touched; readers render dangling references as placeholders.
type DeleteCardCommand struct {
	UserID  string `json:"user_id" validate:"required"`
	Persona string `json:"persona" validate:"required,oneof=student traveler"`
	CardID  string `json:"card_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteCardCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.CardID == "" {
		return errors.New("card ID is required")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// DeleteCardHandler handles the DeleteCardCommand
type DeleteCardHandler struct {
	cards  ports.CardRepository
	logger *zap.Logger
}

// NewDeleteCardHandler creates a new handler instance
func NewDeleteCardHandler(cards ports.CardRepository, logger *zap.Logger) *DeleteCardHandler {
	return &DeleteCardHandler{
		cards:  cards,
		logger: logger,
	}
}

// Handle executes the delete card command
func (h *DeleteCardHandler) Handle(ctx context.Context, cmd DeleteCardCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}
	if _, err := h.cards.GetByID(ctx, cmd.UserID, persona, cmd.CardID); err != nil {
		return err
	}
	return h.cards.Delete(ctx, cmd.UserID, persona, cmd.CardID)
}
