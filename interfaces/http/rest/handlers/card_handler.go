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
	"go.uber.org/zap"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *CardHandler {
	return &CardHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     pkgerrors.NewErrorHandler(logger, false),
		logger:     logger,
	}
}

// UpdateCardRequest represents the request body for updating a card
type UpdateCardRequest struct {
	Question *string `json:"question,omitempty" validate:"omitempty,min=1"`
	Answer   *string `json:"answer,omitempty" validate:"omitempty,min=1"`
	Picture  *string `json:"picture,omitempty"`
}

// ListCards handles GET /cards?persona=
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.ListCardsQuery{
		UserID:  userCtx.UserID,
		Persona: r.URL.Query().Get("persona"),
	}
	if err := query.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list cards",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetCard handles GET /cards/{cardID}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.GetCardQuery{
		UserID:  userCtx.UserID,
		Persona: r.URL.Query().Get("persona"),
		CardID:  chi.URLParam(r, "cardID"),
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

// UpdateCard handles PUT /cards/{cardID}
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req UpdateCardRequest
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

	cmd := commands.UpdateCardCommand{
		UserID:   userCtx.UserID,
		Persona:  r.URL.Query().Get("persona"),
		CardID:   chi.URLParam(r, "cardID"),
		Question: req.Question,
		Answer:   req.Answer,
		Picture:  req.Picture,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update card",
			zap.String("cardID", cmd.CardID),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"id":      cmd.CardID,
		"message": "Card updated successfully",
	})
}

// DeleteCard handles DELETE /cards/{cardID}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteCardCommand{
		UserID:  userCtx.UserID,
		Persona: r.URL.Query().Get("persona"),
		CardID:  chi.URLParam(r, "cardID"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Card deleted successfully",
	})
}
