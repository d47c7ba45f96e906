package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flashcard-backend/application/commands"
	"flashcard-backend/application/commands/bus"
	querybus "flashcard-backend/application/queries/bus"
	"flashcard-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthedRequest(t *testing.T, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)

	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{
		UserID: "user-123",
		Email:  "user@example.com",
	})

	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func TestMoveCards_NewCollectionNameGeneratesID(t *testing.T) {
	// Arrange
	commandBus := bus.NewCommandBus()
	var captured commands.MoveCardsCommand
	err := commandBus.Register(commands.MoveCardsCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			captured = cmd.(commands.MoveCardsCommand)
			return nil
		}))
	require.NoError(t, err)

	handler := NewCollectionHandler(commandBus, querybus.NewQueryBus(), zap.NewNop())
	req := newAuthedRequest(t, http.MethodPost, "/api/v1/collections/default/move", map[string]interface{}{
		"persona":           "student",
		"cardIds":           []string{"card-1", "card-2"},
		"newCollectionName": "Biology",
	}, map[string]string{"collectionID": "default"})
	rec := httptest.NewRecorder()

	// Act
	handler.MoveCards(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MoveCardsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.TargetCollectionID)
	assert.Equal(t, resp.TargetCollectionID, captured.TargetCollectionID)
	assert.Equal(t, "Biology", captured.NewCollectionName)
	assert.Equal(t, "default", captured.SourceCollectionID)
	assert.Equal(t, "user-123", captured.UserID)
	assert.Equal(t, []string{"card-1", "card-2"}, captured.CardIDs)
}

func TestMoveCards_ExistingTargetKeepsID(t *testing.T) {
	// Arrange
	commandBus := bus.NewCommandBus()
	var captured commands.MoveCardsCommand
	err := commandBus.Register(commands.MoveCardsCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			captured = cmd.(commands.MoveCardsCommand)
			return nil
		}))
	require.NoError(t, err)

	handler := NewCollectionHandler(commandBus, querybus.NewQueryBus(), zap.NewNop())
	req := newAuthedRequest(t, http.MethodPost, "/api/v1/collections/coll-1/move", map[string]interface{}{
		"persona":            "traveler",
		"cardIds":            []string{"card-1"},
		"targetCollectionId": "coll-2",
	}, map[string]string{"collectionID": "coll-1"})
	rec := httptest.NewRecorder()

	// Act
	handler.MoveCards(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "coll-2", captured.TargetCollectionID)
	assert.Empty(t, captured.NewCollectionName)
}

func TestMoveCards_RejectsAmbiguousTarget(t *testing.T) {
	// Arrange
	handler := NewCollectionHandler(bus.NewCommandBus(), querybus.NewQueryBus(), zap.NewNop())
	req := newAuthedRequest(t, http.MethodPost, "/api/v1/collections/coll-1/move", map[string]interface{}{
		"persona":            "student",
		"cardIds":            []string{"card-1"},
		"targetCollectionId": "coll-2",
		"newCollectionName":  "Biology",
	}, map[string]string{"collectionID": "coll-1"})
	rec := httptest.NewRecorder()

	// Act
	handler.MoveCards(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMoveCards_RejectsMissingTarget(t *testing.T) {
	// Arrange
	handler := NewCollectionHandler(bus.NewCommandBus(), querybus.NewQueryBus(), zap.NewNop())
	req := newAuthedRequest(t, http.MethodPost, "/api/v1/collections/coll-1/move", map[string]interface{}{
		"persona": "student",
		"cardIds": []string{"card-1"},
	}, map[string]string{"collectionID": "coll-1"})
	rec := httptest.NewRecorder()

	// Act
	handler.MoveCards(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCollection_ReturnsGeneratedID(t *testing.T) {
	// Arrange
	commandBus := bus.NewCommandBus()
	var captured commands.CreateCollectionCommand
	err := commandBus.Register(commands.CreateCollectionCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			captured = cmd.(commands.CreateCollectionCommand)
			return nil
		}))
	require.NoError(t, err)

	handler := NewCollectionHandler(commandBus, querybus.NewQueryBus(), zap.NewNop())
	req := newAuthedRequest(t, http.MethodPost, "/api/v1/collections", map[string]interface{}{
		"persona": "student",
		"name":    "Chemistry",
		"cardIds": []string{"card-9"},
	}, nil)
	rec := httptest.NewRecorder()

	// Act
	handler.CreateCollection(rec, req)

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateCollectionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, resp.ID, captured.CollectionID)
	assert.Equal(t, "Chemistry", captured.Name)
}

func TestDeleteCards_Unauthorized(t *testing.T) {
	// Arrange
	handler := NewCollectionHandler(bus.NewCommandBus(), querybus.NewQueryBus(), zap.NewNop())
	body, _ := json.Marshal(map[string]interface{}{
		"persona": "student",
		"cardIds": []string{"card-1"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collections/coll-1/delete-cards", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	// Act
	handler.DeleteCards(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
