package events

import (
	"time"

	"flashcard-backend/domain/core/valueobjects"
)

// CardsGenerated is raised when the generation gateway has produced and
// persisted a batch of cards.
type CardsGenerated struct {
	BaseEvent
	Persona      valueobjects.Persona `json:"persona"`
	Topic        string               `json:"topic"`
	CardIDs      []string             `json:"card_ids"`
	CollectionID string               `json:"collection_id"`
}

// NewCardsGenerated creates a CardsGenerated event
func NewCardsGenerated(userID string, persona valueobjects.Persona, topic string, cardIDs []string, collectionID string) CardsGenerated {
	return CardsGenerated{
		BaseEvent: BaseEvent{
			AggregateID: collectionID,
			EventType:   "cards.generated",
			Timestamp:   time.Now(),
			UserID:      userID,
		},
		Persona:      persona,
		Topic:        topic,
		CardIDs:      cardIDs,
		CollectionID: collectionID,
	}
}

// CardsMoved is raised after card IDs were reconciled from one collection
// into another.
type CardsMoved struct {
	BaseEvent
	Persona  valueobjects.Persona `json:"persona"`
	CardIDs  []string             `json:"card_ids"`
	SourceID string               `json:"source_id"`
	TargetID string               `json:"target_id"`
}

// NewCardsMoved creates a CardsMoved event
func NewCardsMoved(userID string, persona valueobjects.Persona, cardIDs []string, sourceID, targetID string) CardsMoved {
	return CardsMoved{
		BaseEvent: BaseEvent{
			AggregateID: targetID,
			EventType:   "cards.moved",
			Timestamp:   time.Now(),
			UserID:      userID,
		},
		Persona:  persona,
		CardIDs:  cardIDs,
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// CardsDeleted is raised after card records were removed along with their
// membership in the source collection.
type CardsDeleted struct {
	BaseEvent
	Persona  valueobjects.Persona `json:"persona"`
	CardIDs  []string             `json:"card_ids"`
	SourceID string               `json:"source_id"`
}

// NewCardsDeleted creates a CardsDeleted event
func NewCardsDeleted(userID string, persona valueobjects.Persona, cardIDs []string, sourceID string) CardsDeleted {
	return CardsDeleted{
		BaseEvent: BaseEvent{
			AggregateID: sourceID,
			EventType:   "cards.deleted",
			Timestamp:   time.Now(),
			UserID:      userID,
		},
		Persona:  persona,
		CardIDs:  cardIDs,
		SourceID: sourceID,
	}
}

// CollectionCreated is raised when a named collection is created
type CollectionCreated struct {
	BaseEvent
	Persona valueobjects.Persona `json:"persona"`
	Name    string               `json:"name"`
}

// NewCollectionCreated creates a CollectionCreated event
func NewCollectionCreated(userID string, persona valueobjects.Persona, collectionID, name string) CollectionCreated {
	return CollectionCreated{
		BaseEvent: BaseEvent{
			AggregateID: collectionID,
			EventType:   "collection.created",
			Timestamp:   time.Now(),
			UserID:      userID,
		},
		Persona: persona,
		Name:    name,
	}
}

// CollectionDeleted is raised when a collection document is deleted.
// Member cards survive the collection.
type CollectionDeleted struct {
	BaseEvent
	Persona valueobjects.Persona `json:"persona"`
}

// NewCollectionDeleted creates a CollectionDeleted event
func NewCollectionDeleted(userID string, persona valueobjects.Persona, collectionID string) CollectionDeleted {
	return CollectionDeleted{
		BaseEvent: BaseEvent{
			AggregateID: collectionID,
			EventType:   "collection.deleted",
			Timestamp:   time.Now(),
			UserID:      userID,
		},
		Persona: persona,
	}
}
