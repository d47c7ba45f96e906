package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"flashcard-backend/application/ports"
	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	"flashcard-backend/infrastructure/persistence/schema"
	pkgerrors "flashcard-backend/pkg/errors"
	"flashcard-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CollectionRepository implements the CollectionRepository port using
// DynamoDB. Membership lives in a string-set attribute so AddCards and
// RemoveCards map onto the engine's atomic ADD/DELETE set operations; that
// per-document atomicity is all the reconciliation layer gets to build on.
type CollectionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CollectionRepository {
	return &CollectionRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// collectionItem represents the DynamoDB item structure for a collection.
// The Cards attribute is a string set; DynamoDB forbids empty sets, so an
// empty collection simply has no Cards attribute and reads back as empty.
type collectionItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	CollectionID string   `dynamodbav:"CollectionID"`
	UserID       string   `dynamodbav:"UserID"`
	Persona      string   `dynamodbav:"Persona"`
	Name         string   `dynamodbav:"Name"`
	Cards        []string `dynamodbav:"Cards,stringset,omitempty"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
	UpdatedAt    string   `dynamodbav:"UpdatedAt"`
}

func (i collectionItem) toEntity() (*entities.Collection, error) {
	persona, err := valueobjects.ParsePersona(i.Persona)
	if err != nil {
		return nil, err
	}
	createdAt := utils.ParseTime(i.CreatedAt)
	updatedAt := utils.ParseTime(i.UpdatedAt)
	return entities.ReconstructCollection(i.CollectionID, i.UserID, persona, i.Name, i.Cards, createdAt, updatedAt), nil
}

func (r *CollectionRepository) key(userID string, persona valueobjects.Persona, collectionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		schema.PartitionKey: &types.AttributeValueMemberS{Value: schema.UserPK(userID)},
		schema.SortKey:      &types.AttributeValueMemberS{Value: schema.CollectionSK(persona.String(), collectionID)},
	}
}

// Create persists a new collection document
func (r *CollectionRepository) Create(ctx context.Context, collection *entities.Collection) error {
	item := collectionItem{
		PK:           schema.UserPK(collection.UserID()),
		SK:           schema.CollectionSK(collection.Persona().String(), collection.ID()),
		EntityType:   schema.EntityTypeCollection,
		CollectionID: collection.ID(),
		UserID:       collection.UserID(),
		Persona:      collection.Persona().String(),
		Name:         collection.Name(),
		Cards:        collection.CardIDs(),
		CreatedAt:    utils.FormatTime(collection.CreatedAt()),
		UpdatedAt:    utils.FormatTime(collection.UpdatedAt()),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to create collection",
			zap.String("collectionID", collection.ID()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("create collection", err)
	}
	return nil
}

// GetByID retrieves a collection document
func (r *CollectionRepository) GetByID(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string) (*entities.Collection, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(userID, persona, collectionID),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get collection", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("collection")
	}

	var item collectionItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	return item.toEntity()
}

// ListByPersona retrieves every collection in a user+persona namespace
func (r *CollectionRepository) ListByPersona(ctx context.Context, userID string, persona valueobjects.Persona) ([]*entities.Collection, error) {
	keyCond := expression.Key(schema.PartitionKey).Equal(expression.Value(schema.UserPK(userID))).
		And(expression.Key(schema.SortKey).BeginsWith(schema.CollectionSKPrefix(persona.String())))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	collections := []*entities.Collection{}
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("list collections", err)
		}

		for _, raw := range out.Items {
			var item collectionItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable collection item", zap.Error(err))
				continue
			}
			collection, err := item.toEntity()
			if err != nil {
				r.logger.Warn("Skipping collection with bad persona",
					zap.String("collectionID", item.CollectionID),
					zap.Error(err),
				)
				continue
			}
			collections = append(collections, collection)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return collections, nil
}

// Rename updates a collection's display name
func (r *CollectionRepository) Rename(ctx context.Context, userID string, persona valueobjects.Persona, collectionID, name string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(userID, persona, collectionID),
		UpdateExpression:    aws.String("SET #name = :name, #updated = :updated"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#name":    "Name",
			"#updated": "UpdatedAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":    &types.AttributeValueMemberS{Value: name},
			":updated": &types.AttributeValueMemberS{Value: utils.NowFormatted()},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("collection")
		}
		return pkgerrors.NewDatabaseError("rename collection", err)
	}
	return nil
}

// Delete removes a collection document. Member cards survive.
func (r *CollectionRepository) Delete(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(userID, persona, collectionID),
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete collection", err)
	}
	return nil
}

// AddCards atomically unions card IDs into the membership set. ADD creates
// the Cards attribute when absent, so unioning into an empty collection
// works without a read.
func (r *CollectionRepository) AddCards(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string, cardIDs []string) error {
	if len(cardIDs) == 0 {
		return nil
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(userID, persona, collectionID),
		UpdateExpression:    aws.String("ADD #cards :ids"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#cards": schema.CardsAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids": &types.AttributeValueMemberSS{Value: cardIDs},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("collection")
		}
		return pkgerrors.NewDatabaseError("add cards to collection", err)
	}
	return nil
}

// RemoveCards atomically removes card IDs from the membership set. IDs that
// are not members are ignored by the engine; removing the last member drops
// the Cards attribute entirely, which reads back as an empty set.
func (r *CollectionRepository) RemoveCards(ctx context.Context, userID string, persona valueobjects.Persona, collectionID string, cardIDs []string) error {
	if len(cardIDs) == 0 {
		return nil
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(userID, persona, collectionID),
		UpdateExpression:    aws.String("DELETE #cards :ids"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeNames: map[string]string{
			"#cards": schema.CardsAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids": &types.AttributeValueMemberSS{Value: cardIDs},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewNotFoundError("collection")
		}
		return pkgerrors.NewDatabaseError("remove cards from collection", err)
	}
	return nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
