package dynamodb

import (
	"context"
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

// batchWriteLimit is DynamoDB's cap on items per BatchWriteItem call
const batchWriteLimit = 25

// CardRepository implements the CardRepository port using DynamoDB
type CardRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CardRepository {
	return &CardRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// cardItem represents the DynamoDB item structure for a card
type cardItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	CardID     string `dynamodbav:"CardID"`
	UserID     string `dynamodbav:"UserID"`
	Persona    string `dynamodbav:"Persona"`
	Question   string `dynamodbav:"Question"`
	Answer     string `dynamodbav:"Answer"`
	Picture    string `dynamodbav:"Picture"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func cardToItem(card *entities.Card) cardItem {
	return cardItem{
		PK:         schema.UserPK(card.UserID()),
		SK:         schema.CardSK(card.Persona().String(), card.ID()),
		EntityType: schema.EntityTypeCard,
		CardID:     card.ID(),
		UserID:     card.UserID(),
		Persona:    card.Persona().String(),
		Question:   card.Question(),
		Answer:     card.Answer(),
		Picture:    card.Picture(),
		CreatedAt:  utils.FormatTime(card.CreatedAt()),
		UpdatedAt:  utils.FormatTime(card.UpdatedAt()),
	}
}

func (i cardItem) toEntity() (*entities.Card, error) {
	persona, err := valueobjects.ParsePersona(i.Persona)
	if err != nil {
		return nil, err
	}
	createdAt := utils.ParseTime(i.CreatedAt)
	updatedAt := utils.ParseTime(i.UpdatedAt)
	return entities.ReconstructCard(i.CardID, i.UserID, persona, i.Question, i.Answer, i.Picture, createdAt, updatedAt), nil
}

// Save persists a card record
func (r *CardRepository) Save(ctx context.Context, card *entities.Card) error {
	av, err := attributevalue.MarshalMap(cardToItem(card))
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save card",
			zap.String("cardID", card.ID()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("save card", err)
	}
	return nil
}

// GetByID retrieves a single card record
func (r *CardRepository) GetByID(ctx context.Context, userID string, persona valueobjects.Persona, cardID string) (*entities.Card, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			schema.PartitionKey: &types.AttributeValueMemberS{Value: schema.UserPK(userID)},
			schema.SortKey:      &types.AttributeValueMemberS{Value: schema.CardSK(persona.String(), cardID)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get card", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("card")
	}

	var item cardItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card: %w", err)
	}
	return item.toEntity()
}

// ListByPersona retrieves every card in a user+persona namespace
func (r *CardRepository) ListByPersona(ctx context.Context, userID string, persona valueobjects.Persona) ([]*entities.Card, error) {
	keyCond := expression.Key(schema.PartitionKey).Equal(expression.Value(schema.UserPK(userID))).
		And(expression.Key(schema.SortKey).BeginsWith(schema.CardSKPrefix(persona.String())))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	cards := []*entities.Card{}
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
			return nil, pkgerrors.NewDatabaseError("list cards", err)
		}

		for _, raw := range out.Items {
			var item cardItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable card item", zap.Error(err))
				continue
			}
			card, err := item.toEntity()
			if err != nil {
				r.logger.Warn("Skipping card with bad persona",
					zap.String("cardID", item.CardID),
					zap.Error(err),
				)
				continue
			}
			cards = append(cards, card)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return cards, nil
}

// Update persists field-level edits. The record is replaced wholesale; edits
// go through the entity so timestamps stay consistent.
func (r *CardRepository) Update(ctx context.Context, card *entities.Card) error {
	return r.Save(ctx, card)
}

// Delete removes a card record
func (r *CardRepository) Delete(ctx context.Context, userID string, persona valueobjects.Persona, cardID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			schema.PartitionKey: &types.AttributeValueMemberS{Value: schema.UserPK(userID)},
			schema.SortKey:      &types.AttributeValueMemberS{Value: schema.CardSK(persona.String(), cardID)},
		},
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete card", err)
	}
	return nil
}

// DeleteBatch removes multiple card records in BatchWriteItem chunks
func (r *CardRepository) DeleteBatch(ctx context.Context, userID string, persona valueobjects.Persona, cardIDs []string) error {
	for start := 0; start < len(cardIDs); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(cardIDs) {
			end = len(cardIDs)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, cardID := range cardIDs[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						schema.PartitionKey: &types.AttributeValueMemberS{Value: schema.UserPK(userID)},
						schema.SortKey:      &types.AttributeValueMemberS{Value: schema.CardSK(persona.String(), cardID)},
					},
				},
			})
		}

		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				r.tableName: requests,
			},
		})
		if err != nil {
			return pkgerrors.NewDatabaseError("delete cards", err)
		}
		// Unprocessed items get one immediate retry; beyond that the
		// caller's at-least-once contract covers it.
		if unprocessed, ok := out.UnprocessedItems[r.tableName]; ok && len(unprocessed) > 0 {
			r.logger.Warn("Retrying unprocessed card deletions",
				zap.Int("count", len(unprocessed)),
			)
			_, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					r.tableName: unprocessed,
				},
			})
			if err != nil {
				return pkgerrors.NewDatabaseError("delete cards", err)
			}
		}
	}
	return nil
}
