package commands

import (
	"context"
	"errors"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// UpdateCardCommand edits an existing card. Nil fields are left untouched;
// Picture may be set to the empty string to clear the background image.
type UpdateCardCommand struct {
	UserID   string  `json:"user_id" validate:"required"`
	Persona  string  `json:"persona" validate:"required,oneof=student traveler"`
	CardID   string  `json:"card_id" validate:"required"`
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
	Picture  *string `json:"picture,omitempty"`
}

// Validate validates the command
func (cmd UpdateCardCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.CardID == "" {
		return errors.New("card ID is required")
	}
	if cmd.Question == nil && cmd.Answer == nil && cmd.Picture == nil {
		return errors.New("at least one field to update is required")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// UpdateCardHandler handles the UpdateCardCommand
type UpdateCardHandler struct {
	cards  ports.CardRepository
	logger *zap.Logger
}

// NewUpdateCardHandler creates a new handler instance
func NewUpdateCardHandler(cards ports.CardRepository, logger *zap.Logger) *UpdateCardHandler {
	return &UpdateCardHandler{
		cards:  cards,
		logger: logger,
	}
}

// Handle executes the update card command
func (h *UpdateCardHandler) Handle(ctx context.Context, cmd UpdateCardCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}

	card, err := h.cards.GetByID(ctx, cmd.UserID, persona, cmd.CardID)
	if err != nil {
		return err
	}
	if err := card.Update(cmd.Question, cmd.Answer, cmd.Picture); err != nil {
		return err
	}
	return h.cards.Update(ctx, card)
}
