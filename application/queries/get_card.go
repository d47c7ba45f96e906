package queries

import "errors"

// GetCardQuery represents a query to get a single card
type GetCardQuery struct {
	UserID  string
	Persona string
	CardID  string
}

// Validate validates the GetCardQuery
func (q GetCardQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Persona == "" {
		return errors.New("persona is required")
	}
	if q.CardID == "" {
		return errors.New("card ID is required")
	}
	return nil
}

// CardResult represents one card in query results
type CardResult struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Picture   string `json:"picture"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
