package services

import (
	"context"
	"testing"

	"flashcard-backend/domain/core/entities"
	"flashcard-backend/domain/core/valueobjects"
	pkgerrors "flashcard-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCollection(t *testing.T, id, name string, cardIDs []string) *entities.Collection {
	t.Helper()
	c, err := entities.NewCollectionWithID(id, "user123", valueobjects.PersonaStudent, name, cardIDs)
	require.NoError(t, err)
	return c
}

func TestReconciler_MoveCards_ExistingTarget(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	target := testCollection(t, "coll-b", "Biology", nil)
	mockCollections.On("GetByID", ctx, "user123", persona, "coll-b").Return(target, nil)
	mockCollections.On("AddCards", ctx, "user123", persona, "coll-b", []string{"c1", "c2"}).Return(nil)
	mockCollections.On("RemoveCards", ctx, "user123", persona, "coll-a", []string{"c1", "c2"}).Return(nil)

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	err := r.MoveCards(ctx, "user123", persona, []string{"c1", "c2"}, "coll-a", "coll-b", "")

	// Assert
	assert.NoError(t, err)
	mockCollections.AssertExpectations(t)
}

func TestReconciler_MoveCards_NewCollection(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	mockCollections.On("Create", ctx, mock.MatchedBy(func(c *entities.Collection) bool {
		return c.ID() == "new-id" && c.Name() == "Chapter 2" && c.Size() == 2
	})).Return(nil)
	mockCollections.On("RemoveCards", ctx, "user123", persona, "coll-a", []string{"c1", "c2"}).Return(nil)

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	err := r.MoveCards(ctx, "user123", persona, []string{"c1", "c2"}, "coll-a", "new-id", "Chapter 2")

	// Assert
	assert.NoError(t, err)
	mockCollections.AssertExpectations(t)
	mockCollections.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_MoveCards_TargetMissing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	mockCollections.On("GetByID", ctx, "user123", persona, "gone").
		Return(nil, pkgerrors.NewNotFoundError("collection"))

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	err := r.MoveCards(ctx, "user123", persona, []string{"c1"}, "coll-a", "gone", "")

	// Assert
	assert.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	mockCollections.AssertNotCalled(t, "AddCards", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockCollections.AssertNotCalled(t, "RemoveCards", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_MoveCards_DeduplicatesSet(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	target := testCollection(t, "coll-b", "Biology", nil)
	mockCollections.On("GetByID", ctx, "user123", persona, "coll-b").Return(target, nil)
	mockCollections.On("AddCards", ctx, "user123", persona, "coll-b", []string{"c1"}).Return(nil)
	mockCollections.On("RemoveCards", ctx, "user123", persona, "coll-a", []string{"c1"}).Return(nil)

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	err := r.MoveCards(ctx, "user123", persona, []string{"c1", "c1", ""}, "coll-a", "coll-b", "")

	// Assert
	assert.NoError(t, err)
	mockCollections.AssertExpectations(t)
}

func TestReconciler_DeleteCards_RemovesMembershipFirst(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	var order []string
	mockCollections.On("RemoveCards", ctx, "user123", persona, "coll-a", []string{"c1", "c2"}).
		Run(func(mock.Arguments) { order = append(order, "remove") }).Return(nil)
	mockCards.On("DeleteBatch", ctx, "user123", persona, []string{"c1", "c2"}).
		Run(func(mock.Arguments) { order = append(order, "delete") }).Return(nil)

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	err := r.DeleteCards(ctx, "user123", persona, []string{"c1", "c2"}, "coll-a")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"remove", "delete"}, order)
	mockCollections.AssertExpectations(t)
	mockCards.AssertExpectations(t)
}

func TestReconciler_DeleteCards_MembershipFailureStopsDeletion(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	mockCollections.On("RemoveCards", ctx, "user123", persona, "coll-a", []string{"c1"}).
		Return(pkgerrors.NewDatabaseError("update", assert.AnError))

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	err := r.DeleteCards(ctx, "user123", persona, []string{"c1"}, "coll-a")

	// Assert
	assert.Error(t, err)
	mockCards.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_AttachNewCards_CreatesDefaultBucket(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	mockCollections.On("GetByID", ctx, "user123", persona, entities.DefaultCollectionID).
		Return(nil, pkgerrors.NewNotFoundError("collection"))
	mockCollections.On("Create", ctx, mock.MatchedBy(func(c *entities.Collection) bool {
		return c.ID() == entities.DefaultCollectionID &&
			c.Name() == entities.DefaultCollectionName &&
			c.Contains("c1")
	})).Return(nil)

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	collectionID, err := r.AttachNewCards(ctx, "user123", persona, []string{"c1"}, "")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entities.DefaultCollectionID, collectionID)
	mockCollections.AssertNotCalled(t, "RemoveCards", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_AttachNewCards_UnionsIntoExistingTarget(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaTraveler

	target := testCollection(t, "Paris Trip", "Paris Trip", []string{"old"})
	mockCollections.On("GetByID", ctx, "user123", persona, "Paris Trip").Return(target, nil)
	mockCollections.On("AddCards", ctx, "user123", persona, "Paris Trip", []string{"c1", "c2"}).Return(nil)
	mockCollections.On("RemoveCards", ctx, "user123", persona, entities.DefaultCollectionID, []string{"c1", "c2"}).Return(nil)

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	collectionID, err := r.AttachNewCards(ctx, "user123", persona, []string{"c1", "c2"}, "Paris Trip")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Paris Trip", collectionID)
	mockCollections.AssertExpectations(t)
}

func TestReconciler_AttachNewCards_DefaultCleanupFailureIsNonFatal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockCollections := new(MockCollectionRepository)
	mockCards := new(MockCardRepository)
	persona := valueobjects.PersonaStudent

	mockCollections.On("GetByID", ctx, "user123", persona, "Biology").
		Return(nil, pkgerrors.NewNotFoundError("collection"))
	mockCollections.On("Create", ctx, mock.AnythingOfType("*entities.Collection")).Return(nil)
	mockCollections.On("RemoveCards", ctx, "user123", persona, entities.DefaultCollectionID, []string{"c1"}).
		Return(pkgerrors.NewDatabaseError("update", assert.AnError))

	r := NewReconciler(mockCollections, mockCards, zap.NewNop())

	// Act
	collectionID, err := r.AttachNewCards(ctx, "user123", persona, []string{"c1"}, "Biology")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Biology", collectionID)
	mockCollections.AssertExpectations(t)
}
