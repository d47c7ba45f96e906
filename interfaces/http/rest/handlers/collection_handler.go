package handlers

import (
	"encoding/json"
	"net/http"

	"flashcard-backend/application/commands"
	"flashcard-backend/application/commands/bus"
	"flashcard-backend/application/queries"
	querybus "flashcard-backend/application/queries/bus"
	"flashcard-backend/pkg/auth"
	pkgerrors "flashcard-backend/pkg/errors"
	"flashcard-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectionHandler handles collection-related HTTP requests
type CollectionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *CollectionHandler {
	return &CollectionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     pkgerrors.NewErrorHandler(logger, false),
		logger:     logger,
	}
}

// CreateCollectionRequest represents the request body for creating a collection
type CreateCollectionRequest struct {
	Persona string   `json:"persona" validate:"required,oneof=student traveler"`
	Name    string   `json:"name" validate:"required,min=1,max=100"`
	CardIDs []string `json:"cardIds,omitempty"`
}

// CreateCollectionResponse represents the response for creating a collection
type CreateCollectionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// RenameCollectionRequest represents the request body for renaming a collection
type RenameCollectionRequest struct {
	Persona string `json:"persona" validate:"required,oneof=student traveler"`
	Name    string `json:"name" validate:"required,min=1,max=100"`
}

// MoveCardsRequest represents the request body for moving cards between
// collections. Exactly one of TargetCollectionID and NewCollectionName
// should be set.
type MoveCardsRequest struct {
	Persona            string   `json:"persona" validate:"required,oneof=student traveler"`
	CardIDs            []string `json:"cardIds" validate:"required,min=1"`
	TargetCollectionID string   `json:"targetCollectionId,omitempty"`
	NewCollectionName  string   `json:"newCollectionName,omitempty" validate:"omitempty,max=100"`
}

// MoveCardsResponse represents the response for moving cards
type MoveCardsResponse struct {
	TargetCollectionID string `json:"targetCollectionId"`
	Message            string `json:"message"`
}

// DeleteCardsRequest represents the request body for deleting cards from a
// collection
type DeleteCardsRequest struct {
	Persona string   `json:"persona" validate:"required,oneof=student traveler"`
	CardIDs []string `json:"cardIds" validate:"required,min=1"`
}

// ListCollections handles GET /collections?persona=
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.ListCollectionsQuery{
		UserID:  userCtx.UserID,
		Persona: r.URL.Query().Get("persona"),
	}
	if err := query.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list collections",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetCollection handles GET /collections/{collectionID}
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.GetCollectionQuery{
		UserID:       userCtx.UserID,
		Persona:      r.URL.Query().Get("persona"),
		CollectionID: chi.URLParam(r, "collectionID"),
	}
	if err := query.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// CreateCollection handles POST /collections
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	collectionID := uuid.New().String()

	cmd := commands.CreateCollectionCommand{
		CollectionID: collectionID,
		UserID:       userCtx.UserID,
		Persona:      req.Persona,
		Name:         req.Name,
		CardIDs:      req.CardIDs,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create collection",
			zap.String("userID", userCtx.UserID),
			zap.String("name", req.Name),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, CreateCollectionResponse{
		ID:      collectionID,
		Message: "Collection created successfully",
	})
}

// RenameCollection handles PUT /collections/{collectionID}
func (h *CollectionHandler) RenameCollection(w http.ResponseWriter, r *http.Request) {
	var req RenameCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.RenameCollectionCommand{
		UserID:       userCtx.UserID,
		Persona:      req.Persona,
		CollectionID: chi.URLParam(r, "collectionID"),
		Name:         req.Name,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"id":      cmd.CollectionID,
		"message": "Collection renamed successfully",
	})
}

// DeleteCollection handles DELETE /collections/{collectionID}. Member cards
// are not deleted.
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteCollectionCommand{
		UserID:       userCtx.UserID,
		Persona:      r.URL.Query().Get("persona"),
		CollectionID: chi.URLParam(r, "collectionID"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Collection deleted successfully",
	})
}

// MoveCards handles POST /collections/{collectionID}/move
func (h *CollectionHandler) MoveCards(w http.ResponseWriter, r *http.Request) {
	var req MoveCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if (req.TargetCollectionID == "") == (req.NewCollectionName == "") {
		respondError(w, h.logger, http.StatusBadRequest, "Exactly one of targetCollectionId and newCollectionName is required")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID := req.TargetCollectionID
	if req.NewCollectionName != "" {
		targetID = uuid.New().String()
	}

	cmd := commands.MoveCardsCommand{
		UserID:             userCtx.UserID,
		Persona:            req.Persona,
		CardIDs:            req.CardIDs,
		SourceCollectionID: chi.URLParam(r, "collectionID"),
		TargetCollectionID: targetID,
		NewCollectionName:  req.NewCollectionName,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to move cards",
			zap.String("sourceID", cmd.SourceCollectionID),
			zap.String("targetID", cmd.TargetCollectionID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, MoveCardsResponse{
		TargetCollectionID: targetID,
		Message:            "Cards moved successfully",
	})
}

// DeleteCards handles POST /collections/{collectionID}/delete-cards.
// Membership is removed before the cards themselves are deleted.
func (h *CollectionHandler) DeleteCards(w http.ResponseWriter, r *http.Request) {
	var req DeleteCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteCardsCommand{
		UserID:             userCtx.UserID,
		Persona:            req.Persona,
		CardIDs:            req.CardIDs,
		SourceCollectionID: chi.URLParam(r, "collectionID"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete cards",
			zap.String("sourceID", cmd.SourceCollectionID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Cards deleted successfully",
	})
}
