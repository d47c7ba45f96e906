package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flashcard-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		APIKey:   "test-key",
		Endpoint: server.URL,
	}, observability.NewTracer(""), zap.NewNop())
	return client.(*Client)
}

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return body
}

func TestClient_GenerateFlashcards_ParsesBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "fallback", req.Route)
		assert.Equal(t, fallbackModels, req.Models)
		assert.Equal(t, flashcardMaxTokens, req.MaxTokens)

		w.Write(completionBody("Question: Q1 Answer: A1\n\nQuestion: Q2 Answer: A2"))
	})

	pairs, err := client.GenerateFlashcards(context.Background(), "biology", 2)

	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Q1", pairs[0].Question)
	assert.Equal(t, "A2", pairs[1].Answer)
}

func TestClient_GenerateFlashcards_EmptyContentFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(""))
	})

	pairs, err := client.GenerateFlashcards(context.Background(), "chemistry", 5)

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "What is an interesting fact about chemistry?", pairs[0].Question)
}

func TestClient_GenerateFlashcards_APIErrorRaises(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	pairs, err := client.GenerateFlashcards(context.Background(), "physics", 5)

	assert.Error(t, err)
	assert.Nil(t, pairs)
}

func TestClient_GenerateTrivia_SinglePair(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, triviaMaxTokens, req.MaxTokens)

		w.Write(completionBody("Question: Which river runs through Rome? Answer: The Tiber"))
	})

	pair, err := client.GenerateTrivia(context.Background(), "Rome")

	require.NoError(t, err)
	assert.Equal(t, "Which river runs through Rome?", pair.Question)
	assert.Equal(t, "The Tiber", pair.Answer)
}
