package services

import (
	"context"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	pkgerrors "flashcard-backend/pkg/errors"

	"go.uber.org/zap"
)

// Reconciler applies multi-document membership changes using the per-document
// atomic set primitives of the collection store. There is no atomicity across
// documents: every operation here is at-least-once, and repeating one with the
// same card set converges to the same state (unions and removals are
// idempotent per document).
type Reconciler struct {
	collections ports.CollectionRepository
	cards       ports.CardRepository
	logger      *zap.Logger
}

// NewReconciler creates a new reconciliation service
func NewReconciler(
	collections ports.CollectionRepository,
	cards ports.CardRepository,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		collections: collections,
		cards:       cards,
		logger:      logger,
	}
}

// MoveCards files the card set into the target collection and then removes it
// from the source. When newName is non-empty a fresh collection is created
// under targetID (the caller supplies the new ID) to receive the set;
// otherwise the target must already exist and the set is unioned into it. A
// crash between the two writes can leave the set in both collections;
// rerunning the same move repairs that.
func (r *Reconciler) MoveCards(
	ctx context.Context,
	userID string,
	persona valueobjects.Persona,
	cardIDs []string,
	sourceID, targetID, newName string,
) error {
	cardIDs = dedupe(cardIDs)

	if newName != "" {
		target, err := entities.NewCollectionWithID(targetID, userID, persona, newName, cardIDs)
		if err != nil {
			return err
		}
		if err := r.collections.Create(ctx, target); err != nil {
			return err
		}
	} else {
		if _, err := r.collections.GetByID(ctx, userID, persona, targetID); err != nil {
			return err
		}
		if err := r.collections.AddCards(ctx, userID, persona, targetID, cardIDs); err != nil {
			return err
		}
	}

	if err := r.collections.RemoveCards(ctx, userID, persona, sourceID, cardIDs); err != nil {
		return err
	}

	r.logger.Info("Moved cards between collections",
		zap.String("userID", userID),
		zap.String("persona", persona.String()),
		zap.String("sourceID", sourceID),
		zap.String("targetID", targetID),
		zap.Int("cardCount", len(cardIDs)),
	)
	return nil
}

// DeleteCards removes the set from the source collection's membership and
// then deletes the card records. Membership goes first so a partial failure
// never adds a dangling reference; at worst a card record outlives its
// membership and shows up unfiled.
func (r *Reconciler) DeleteCards(
	ctx context.Context,
	userID string,
	persona valueobjects.Persona,
	cardIDs []string,
	sourceID string,
) error {
	cardIDs = dedupe(cardIDs)

	if err := r.collections.RemoveCards(ctx, userID, persona, sourceID, cardIDs); err != nil {
		return err
	}
	if err := r.cards.DeleteBatch(ctx, userID, persona, cardIDs); err != nil {
		return err
	}

	r.logger.Info("Deleted cards",
		zap.String("userID", userID),
		zap.String("persona", persona.String()),
		zap.String("sourceID", sourceID),
		zap.Int("cardCount", len(cardIDs)),
	)
	return nil
}

// AttachNewCards files freshly generated cards into the named collection,
// creating it on first use. The collection document ID is the requested name
// itself ("default" when none is given), so repeated generations into the
// same name accumulate in one document. When the target is not the default
// bucket the set is also removed from it, so generated cards do not linger
// unfiled.
func (r *Reconciler) AttachNewCards(
	ctx context.Context,
	userID string,
	persona valueobjects.Persona,
	cardIDs []string,
	targetName string,
) (string, error) {
	cardIDs = dedupe(cardIDs)

	targetID := targetName
	displayName := targetName
	if targetID == "" || targetID == entities.DefaultCollectionID {
		targetID = entities.DefaultCollectionID
		displayName = entities.DefaultCollectionName
	}

	if err := r.addToCollection(ctx, userID, persona, targetID, displayName, cardIDs); err != nil {
		return "", err
	}

	if targetID != entities.DefaultCollectionID {
		if err := r.collections.RemoveCards(ctx, userID, persona, entities.DefaultCollectionID, cardIDs); err != nil {
			// The default bucket may not exist yet for this namespace.
			r.logger.Warn("Failed to clear generated cards from default bucket",
				zap.String("userID", userID),
				zap.String("persona", persona.String()),
				zap.Error(err),
			)
		}
	}

	return targetID, nil
}

// addToCollection unions the set into the collection, materializing the
// document when it does not exist yet.
func (r *Reconciler) addToCollection(
	ctx context.Context,
	userID string,
	persona valueobjects.Persona,
	collectionID, displayName string,
	cardIDs []string,
) error {
	_, err := r.collections.GetByID(ctx, userID, persona, collectionID)
	if err == nil {
		return r.collections.AddCards(ctx, userID, persona, collectionID, cardIDs)
	}
	if !pkgerrors.IsNotFound(err) {
		return err
	}

	var collection *entities.Collection
	if collectionID == entities.DefaultCollectionID {
		collection, err = entities.NewDefaultCollection(userID, persona)
		if err != nil {
			return err
		}
		collection.AddCards(cardIDs)
	} else {
		collection, err = entities.NewCollectionWithID(collectionID, userID, persona, displayName, cardIDs)
		if err != nil {
			return err
		}
	}
	return r.collections.Create(ctx, collection)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
