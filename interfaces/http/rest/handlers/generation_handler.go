package handlers

import (
	"encoding/json"
	"net/http"

	"flashcard-backend/application/ports"
	"flashcard-backend/application/services"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/pkg/auth"
	pkgerrors "flashcard-backend/pkg/errors"
	"flashcard-backend/pkg/utils"

	"go.uber.org/zap"
)

// GenerationHandler handles flashcard generation, trivia and checkout
// requests
type GenerationHandler struct {
	generation *services.GenerationService
	payments   ports.PaymentGateway
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(
	generation *services.GenerationService,
	payments ports.PaymentGateway,
	logger *zap.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generation: generation,
		payments:   payments,
		errors:     pkgerrors.NewErrorHandler(logger, false),
		logger:     logger,
	}
}

// GenerateRequest represents the request body for generating flashcards.
// Students supply a subject; travelers supply a location.
type GenerateRequest struct {
	Persona        string `json:"persona" validate:"required,oneof=student traveler"`
	Subject        string `json:"subject,omitempty"`
	Location       string `json:"location,omitempty"`
	CollectionName string `json:"collectionName,omitempty" validate:"omitempty,max=100"`
	Count          int    `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
}

// GenerateResponse represents the response for generating flashcards
type GenerateResponse struct {
	Flashcards   []services.GeneratedCard `json:"flashcards"`
	CardIDs      []string                 `json:"cardIds"`
	CollectionID string                   `json:"collectionId"`
}

// Generate handles POST /flashcards
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
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

	persona, err := valueobjects.ParsePersona(req.Persona)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	topic := req.Subject
	if persona == valueobjects.PersonaTraveler {
		topic = req.Location
	}
	if topic == "" {
		respondError(w, h.logger, http.StatusBadRequest, "A subject or location is required")
		return
	}

	result, err := h.generation.Generate(r.Context(), services.GenerateInput{
		UserID:         userCtx.UserID,
		Persona:        persona,
		Topic:          topic,
		Count:          req.Count,
		CollectionName: req.CollectionName,
	})
	if err != nil {
		h.logger.Error("Generation failed",
			zap.String("userID", userCtx.UserID),
			zap.String("topic", topic),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, GenerateResponse{
		Flashcards:   result.Flashcards,
		CardIDs:      result.CardIDs,
		CollectionID: result.CollectionID,
	})
}

// TriviaRequest represents the request body for a trivia question
type TriviaRequest struct {
	Location string `json:"location" validate:"required"`
}

// TriviaResponse represents the response for a trivia question
type TriviaResponse struct {
	Trivia          triviaPair `json:"trivia"`
	BackgroundImage string     `json:"backgroundImage"`
}

type triviaPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Trivia handles POST /trivia. Nothing is persisted.
func (h *GenerationHandler) Trivia(w http.ResponseWriter, r *http.Request) {
	var req TriviaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.generation.Trivia(r.Context(), req.Location)
	if err != nil {
		h.logger.Error("Trivia generation failed",
			zap.String("location", req.Location),
			zap.Error(err),
		)
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, TriviaResponse{
		Trivia:          triviaPair{Question: result.Question, Answer: result.Answer},
		BackgroundImage: result.BackgroundImage,
	})
}

// CheckoutResponse represents the response for a checkout session
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
}

// Checkout handles POST /checkout
func (h *GenerationHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.GetUserFromContext(r.Context()); err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "https://" + r.Host
	}

	sessionID, err := h.payments.CreateCheckoutSession(r.Context(), origin)
	if err != nil {
		h.logger.Error("Checkout session creation failed", zap.Error(err))
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, CheckoutResponse{SessionID: sessionID})
}
