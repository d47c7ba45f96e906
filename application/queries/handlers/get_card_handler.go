package handlers

import (
	"context"

	"flashcard-backend/application/ports"
	"flashcard-backend/application/queries"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/pkg/utils"

	"go.uber.org/zap"
)

// GetCardHandler handles single-card reads
type GetCardHandler struct {
	cards  ports.CardRepository
	logger *zap.Logger
}

// NewGetCardHandler creates a new handler instance
func NewGetCardHandler(cards ports.CardRepository, logger *zap.Logger) *GetCardHandler {
	return &GetCardHandler{
		cards:  cards,
		logger: logger,
	}
}

// Handle executes the get card query
func (h *GetCardHandler) Handle(ctx context.Context, query queries.GetCardQuery) (*queries.CardResult, error) {
	persona, err := valueobjects.ParsePersona(query.Persona)
	if err != nil {
		return nil, err
	}

	card, err := h.cards.GetByID(ctx, query.UserID, persona, query.CardID)
	if err != nil {
		return nil, err
	}
	return &queries.CardResult{
		ID:        card.ID(),
		Question:  card.Question(),
		Answer:    card.Answer(),
		Picture:   card.Picture(),
		CreatedAt: utils.FormatTime(card.CreatedAt()),
		UpdatedAt: utils.FormatTime(card.UpdatedAt()),
	}, nil
}
