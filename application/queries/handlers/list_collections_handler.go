package handlers

import (
	"context"

	"flashcard-backend/application/ports"
	"flashcard-backend/application/queries"
	"flashcard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// ListCollectionsHandler handles persona-wide collection listings
type ListCollectionsHandler struct {
	collections ports.CollectionRepository
	logger      *zap.Logger
}

// NewListCollectionsHandler creates a new handler instance
func NewListCollectionsHandler(collections ports.CollectionRepository, logger *zap.Logger) *ListCollectionsHandler {
	return &ListCollectionsHandler{
		collections: collections,
		logger:      logger,
	}
}

// Handle executes the list collections query
func (h *ListCollectionsHandler) Handle(ctx context.Context, query queries.ListCollectionsQuery) (*queries.ListCollectionsResult, error) {
	persona, err := valueobjects.ParsePersona(query.Persona)
	if err != nil {
		return nil, err
	}

	collections, err := h.collections.ListByPersona(ctx, query.UserID, persona)
	if err != nil {
		return nil, err
	}

	result := &queries.ListCollectionsResult{
		Collections: make([]queries.CollectionSummary, 0, len(collections)),
		Total:       len(collections),
	}
	for _, collection := range collections {
		result.Collections = append(result.Collections, queries.CollectionSummary{
			ID:        collection.ID(),
			Name:      collection.Name(),
			CardIDs:   collection.CardIDs(),
			CardCount: collection.Size(),
		})
	}
	return result, nil
}
