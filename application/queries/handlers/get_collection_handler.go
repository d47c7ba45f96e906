package handlers

import (
	"context"

	"flashcard-backend/application/ports"
	"flashcard-backend/application/queries"
	"flashcard-backend/domain/core/valueobjects"
	pkgerrors "flashcard-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetCollectionHandler handles single-collection reads, resolving member
// cards
type GetCollectionHandler struct {
	collections ports.CollectionRepository
	cards       ports.CardRepository
	logger      *zap.Logger
}

// NewGetCollectionHandler creates a new handler instance
func NewGetCollectionHandler(
	collections ports.CollectionRepository,
	cards ports.CardRepository,
	logger *zap.Logger,
) *GetCollectionHandler {
	return &GetCollectionHandler{
		collections: collections,
		cards:       cards,
		logger:      logger,
	}
}

// Handle executes the get collection query. Member IDs whose card records no
// longer exist resolve to placeholders rather than failing the read.
func (h *GetCollectionHandler) Handle(ctx context.Context, query queries.GetCollectionQuery) (*queries.GetCollectionResult, error) {
	persona, err := valueobjects.ParsePersona(query.Persona)
	if err != nil {
		return nil, err
	}

	collection, err := h.collections.GetByID(ctx, query.UserID, persona, query.CollectionID)
	if err != nil {
		return nil, err
	}

	result := &queries.GetCollectionResult{
		ID:    collection.ID(),
		Name:  collection.Name(),
		Cards: make([]queries.CollectionCard, 0, collection.Size()),
	}
	for _, cardID := range collection.CardIDs() {
		card, err := h.cards.GetByID(ctx, query.UserID, persona, cardID)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				h.logger.Debug("Collection references missing card",
					zap.String("collectionID", collection.ID()),
					zap.String("cardID", cardID),
				)
				result.Cards = append(result.Cards, queries.CollectionCard{
					ID:      cardID,
					Missing: true,
				})
				continue
			}
			return nil, err
		}
		result.Cards = append(result.Cards, queries.CollectionCard{
			ID:       card.ID(),
			Question: card.Question(),
			Answer:   card.Answer(),
			Picture:  card.Picture(),
		})
	}
	return result, nil
}
