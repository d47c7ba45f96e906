package queries

import "errors"

// ListCardsQuery represents a query to list all cards in a persona namespace
type ListCardsQuery struct {
	UserID  string
	Persona string
}

// Validate validates the ListCardsQuery
func (q ListCardsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Persona == "" {
		return errors.New("persona is required")
	}
	return nil
}

// ListCardsResult represents the result of listing cards
type ListCardsResult struct {
	Cards []CardResult `json:"cards"`
	Total int          `json:"total"`
}
