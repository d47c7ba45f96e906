// Package schema centralizes the single-table DynamoDB layout. Every record
// lives under the owning user's partition; the sort key carries the entity
// kind and the persona namespace so one Query scans a whole namespace.
package schema

import "fmt"

const (
	// PartitionKey and SortKey are the table's key attribute names
	PartitionKey = "PK"
	SortKey      = "SK"

	// EntityTypeCard and EntityTypeCollection tag items for debugging
	EntityTypeCard       = "CARD"
	EntityTypeCollection = "COLLECTION"

	// CardsAttribute is the string-set attribute holding collection
	// membership
	CardsAttribute = "Cards"
)

// UserPK builds the partition key for a user
func UserPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

// CardSK builds the sort key for a card record
func CardSK(persona, cardID string) string {
	return fmt.Sprintf("CARD#%s#%s", persona, cardID)
}

// CardSKPrefix is the sort-key prefix shared by all cards in a persona
// namespace
func CardSKPrefix(persona string) string {
	return fmt.Sprintf("CARD#%s#", persona)
}

// CollectionSK builds the sort key for a collection document
func CollectionSK(persona, collectionID string) string {
	return fmt.Sprintf("COLL#%s#%s", persona, collectionID)
}

// CollectionSKPrefix is the sort-key prefix shared by all collections in a
// persona namespace
func CollectionSKPrefix(persona string) string {
	return fmt.Sprintf("COLL#%s#", persona)
}
