package entities

import (
	"time"

	"github.com/google/uuid"

	"flashcard-backend/domain/core/valueobjects"
	pkgerrors "flashcard-backend/pkg/errors"
)

// Card is one question/answer record with an optional background image.
// Cards are owned by a single user+persona namespace and referenced, never
// owned, by collections.
type Card struct {
	id        string
	userID    string
	persona   valueobjects.Persona
	question  string
	answer    string
	picture   string
	createdAt time.Time
	updatedAt time.Time
}

// NewCard creates a card with a fresh ID. Only required-field presence is
// validated; content is whatever the generation gateway produced.
func NewCard(userID string, persona valueobjects.Persona, question, answer, picture string) (*Card, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if question == "" {
		return nil, pkgerrors.NewValidationError("question cannot be empty")
	}
	if answer == "" {
		return nil, pkgerrors.NewValidationError("answer cannot be empty")
	}

	now := time.Now()
	return &Card{
		id:        uuid.New().String(),
		userID:    userID,
		persona:   persona,
		question:  question,
		answer:    answer,
		picture:   picture,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCard rebuilds a card from its persisted form
func ReconstructCard(id, userID string, persona valueobjects.Persona, question, answer, picture string, createdAt, updatedAt time.Time) *Card {
	return &Card{
		id:        id,
		userID:    userID,
		persona:   persona,
		question:  question,
		answer:    answer,
		picture:   picture,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *Card) ID() string                     { return c.id }
func (c *Card) UserID() string                 { return c.userID }
func (c *Card) Persona() valueobjects.Persona  { return c.persona }
func (c *Card) Question() string               { return c.question }
func (c *Card) Answer() string                 { return c.answer }
func (c *Card) Picture() string                { return c.picture }
func (c *Card) CreatedAt() time.Time           { return c.createdAt }
func (c *Card) UpdatedAt() time.Time           { return c.updatedAt }

// Update applies field-level edits. Nil pointers leave fields untouched; the
// picture may be set to the empty string to clear it.
func (c *Card) Update(question, answer, picture *string) error {
	if question != nil {
		if *question == "" {
			return pkgerrors.NewValidationError("question cannot be empty")
		}
		c.question = *question
	}
	if answer != nil {
		if *answer == "" {
			return pkgerrors.NewValidationError("answer cannot be empty")
		}
		c.answer = *answer
	}
	if picture != nil {
		c.picture = *picture
	}
	c.updatedAt = time.Now()
	return nil
}
