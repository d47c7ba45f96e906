package handlers

import (
	"context"

	"flashcard-backend/application/ports"
	"flashcard-backend/application/queries"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/pkg/utils"

	"go.uber.org/zap"
)

// ListCardsHandler handles persona-wide card listings
type ListCardsHandler struct {
	cards  ports.CardRepository
	logger *zap.Logger
}

// NewListCardsHandler creates a new handler instance
func NewListCardsHandler(cards ports.CardRepository, logger *zap.Logger) *ListCardsHandler {
	return &ListCardsHandler{
		cards:  cards,
		logger: logger,
	}
}

// Handle executes the list cards query
func (h *ListCardsHandler) Handle(ctx context.Context, query queries.ListCardsQuery) (*queries.ListCardsResult, error) {
	persona, err := valueobjects.ParsePersona(query.Persona)
	if err != nil {
		return nil, err
	}

	cards, err := h.cards.ListByPersona(ctx, query.UserID, persona)
	if err != nil {
		return nil, err
	}

	result := &queries.ListCardsResult{
		Cards: make([]queries.CardResult, 0, len(cards)),
		Total: len(cards),
	}
	for _, card := range cards {
		result.Cards = append(result.Cards, queries.CardResult{
			ID:        card.ID(),
			Question:  card.Question(),
			Answer:    card.Answer(),
			Picture:   card.Picture(),
			CreatedAt: utils.FormatTime(card.CreatedAt()),
			UpdatedAt: utils.FormatTime(card.UpdatedAt()),
		})
	}
	return result, nil
}
