package commands

import (
	"context"
	"errors"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// RenameCollectionCommand updates a collection's display name
type RenameCollectionCommand struct {
	UserID       string `json:"user_id" validate:"required"`
	Persona      string `json:"persona" validate:"required,oneof=student traveler"`
	CollectionID string `json:"collection_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
}

// Validate validates the command
func (cmd RenameCollectionCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.CollectionID == "" {
		return errors.New("collection ID is required")
	}
	if cmd.Name == "" {
		return errors.New("collection name is required")
	}
	if len(cmd.Name) > MaxCollectionNameLength {
		return errors.New("collection name exceeds maximum length")
	}
	if _, err := valueobjects.ParsePersona(cmd.Persona); err != nil {
		return err
	}
	return nil
}

// RenameCollectionHandler handles the RenameCollectionCommand
type RenameCollectionHandler struct {
	collections ports.CollectionRepository
	logger      *zap.Logger
}

// NewRenameCollectionHandler creates a new handler instance
func NewRenameCollectionHandler(collections ports.CollectionRepository, logger *zap.Logger) *RenameCollectionHandler {
	return &RenameCollectionHandler{
		collections: collections,
		logger:      logger,
	}
}

// Handle executes the rename collection command
func (h *RenameCollectionHandler) Handle(ctx context.Context, cmd RenameCollectionCommand) error {
	persona, err := valueobjects.ParsePersona(cmd.Persona)
	if err != nil {
		return err
	}
	if _, err := h.collections.GetByID(ctx, cmd.UserID, persona, cmd.CollectionID); err != nil {
		return err
	}
	return h.collections.Rename(ctx, cmd.UserID, persona, cmd.CollectionID, cmd.Name)
}
