package queries

import "errors"

// ListCollectionsQuery represents a query to list all collections in a
// persona namespace
type ListCollectionsQuery struct {
	UserID  string
	Persona string
}

// Validate validates the ListCollectionsQuery
func (q ListCollectionsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Persona == "" {
		return errors.New("persona is required")
	}
	return nil
}

// CollectionSummary is one collection without its cards resolved
type CollectionSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CardIDs   []string `json:"cardIds"`
	CardCount int      `json:"cardCount"`
}

// ListCollectionsResult represents the result of listing collections
type ListCollectionsResult struct {
	Collections []CollectionSummary `json:"collections"`
	Total       int                 `json:"total"`
}
