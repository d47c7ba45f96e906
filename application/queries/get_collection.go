package queries

import "errors"

// GetCollectionQuery represents a query to get one collection with its cards
// resolved
type GetCollectionQuery struct {
	UserID       string
	Persona      string
	CollectionID string
}

// Validate validates the GetCollectionQuery
func (q GetCollectionQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Persona == "" {
		return errors.New("persona is required")
	}
	if q.CollectionID == "" {
		return errors.New("collection ID is required")
	}
	return nil
}

// CollectionCard is one resolved member card. Membership can reference cards
// that no longer exist; those come back as placeholders with Missing set
// rather than failing the whole read.
type CollectionCard struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Picture  string `json:"picture"`
	Missing  bool   `json:"missing,omitempty"`
}

// GetCollectionResult represents the result of getting a collection
type GetCollectionResult struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Cards []CollectionCard `json:"cards"`
}
