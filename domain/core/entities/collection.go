package entities

import (
	"time"

	"github.com/google/uuid"

	"flashcard-backend/domain/core/valueobjects"
	pkgerrors "flashcard-backend/pkg/errors"
)

const (
	// DefaultCollectionID is the distinguished collection that receives
	// freshly generated cards when no explicit target was chosen.
	DefaultCollectionID = "default"

	// DefaultCollectionName is the display name given to the default bucket
	// when it is first materialized.
	DefaultCollectionName = "Default Collection"
)

// Collection is a named, mutable set of card IDs scoped to one user+persona
// namespace. Display names are not unique; only IDs are. A card ID may appear
// in more than one collection.
type Collection struct {
	id        string
	userID    string
	persona   valueobjects.Persona
	name      string
	cardIDs   map[string]struct{}
	createdAt time.Time
	updatedAt time.Time
}

// NewCollection creates a collection with a fresh ID and the given members
func NewCollection(userID string, persona valueobjects.Persona, name string, cardIDs []string) (*Collection, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("collection name cannot be empty")
	}

	c := &Collection{
		id:        uuid.New().String(),
		userID:    userID,
		persona:   persona,
		name:      name,
		cardIDs:   make(map[string]struct{}, len(cardIDs)),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	c.AddCards(cardIDs)
	return c, nil
}

// NewCollectionWithID creates a collection under a caller-chosen ID. The
// generation path files cards into collections whose ID is the requested
// collection name, materializing them on first use.
func NewCollectionWithID(id, userID string, persona valueobjects.Persona, name string, cardIDs []string) (*Collection, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("collection ID cannot be empty")
	}
	c, err := NewCollection(userID, persona, name, cardIDs)
	if err != nil {
		return nil, err
	}
	c.id = id
	return c, nil
}

// NewDefaultCollection creates the default bucket for a namespace
func NewDefaultCollection(userID string, persona valueobjects.Persona) (*Collection, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	return &Collection{
		id:        DefaultCollectionID,
		userID:    userID,
		persona:   persona,
		name:      DefaultCollectionName,
		cardIDs:   make(map[string]struct{}),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}, nil
}

// ReconstructCollection rebuilds a collection from its persisted form
func ReconstructCollection(id, userID string, persona valueobjects.Persona, name string, cardIDs []string, createdAt, updatedAt time.Time) *Collection {
	c := &Collection{
		id:        id,
		userID:    userID,
		persona:   persona,
		name:      name,
		cardIDs:   make(map[string]struct{}, len(cardIDs)),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	for _, cardID := range cardIDs {
		c.cardIDs[cardID] = struct{}{}
	}
	return c
}

func (c *Collection) ID() string                    { return c.id }
func (c *Collection) UserID() string                { return c.userID }
func (c *Collection) Persona() valueobjects.Persona { return c.persona }
func (c *Collection) Name() string                  { return c.name }
func (c *Collection) CreatedAt() time.Time          { return c.createdAt }
func (c *Collection) UpdatedAt() time.Time          { return c.updatedAt }

// IsDefault reports whether this is the default bucket
func (c *Collection) IsDefault() bool {
	return c.id == DefaultCollectionID
}

// CardIDs returns the member card IDs. Order carries no meaning.
func (c *Collection) CardIDs() []string {
	ids := make([]string, 0, len(c.cardIDs))
	for id := range c.cardIDs {
		ids = append(ids, id)
	}
	return ids
}

// Size returns the number of member card IDs
func (c *Collection) Size() int {
	return len(c.cardIDs)
}

// Contains reports whether the given card ID is a member
func (c *Collection) Contains(cardID string) bool {
	_, ok := c.cardIDs[cardID]
	return ok
}

// AddCards unions the given IDs into the membership set and returns the IDs
// that were actually new. Re-adding a member is a no-op.
func (c *Collection) AddCards(cardIDs []string) []string {
	var added []string
	for _, id := range cardIDs {
		if id == "" {
			continue
		}
		if _, ok := c.cardIDs[id]; !ok {
			c.cardIDs[id] = struct{}{}
			added = append(added, id)
		}
	}
	if len(added) > 0 {
		c.updatedAt = time.Now()
	}
	return added
}

// RemoveCards removes the given IDs from the membership set and returns the
// IDs that were actually present. Removing a non-member is a no-op.
func (c *Collection) RemoveCards(cardIDs []string) []string {
	var removed []string
	for _, id := range cardIDs {
		if _, ok := c.cardIDs[id]; ok {
			delete(c.cardIDs, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		c.updatedAt = time.Now()
	}
	return removed
}

// Rename changes the display name
func (c *Collection) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidationError("collection name cannot be empty")
	}
	c.name = name
	c.updatedAt = time.Now()
	return nil
}
