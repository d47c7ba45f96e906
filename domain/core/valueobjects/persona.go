package valueobjects

import (
	"fmt"
)

// Persona is the namespace under which a user's cards and collections are
// scoped. Every card and collection belongs to exactly one persona.
type Persona string

const (
	PersonaStudent  Persona = "student"
	PersonaTraveler Persona = "traveler"
)

// ParsePersona validates a raw persona string
func ParsePersona(s string) (Persona, error) {
	switch Persona(s) {
	case PersonaStudent, PersonaTraveler:
		return Persona(s), nil
	default:
		return "", fmt.Errorf("unknown persona %q", s)
	}
}

// String returns the persona as a string
func (p Persona) String() string {
	return string(p)
}

// CardNamespace returns the persisted namespace for card records,
// e.g. "student_cards".
func (p Persona) CardNamespace() string {
	return string(p) + "_cards"
}

// CollectionNamespace returns the persisted namespace for collection
// documents, e.g. "traveler_collections".
func (p Persona) CollectionNamespace() string {
	return string(p) + "_collections"
}
