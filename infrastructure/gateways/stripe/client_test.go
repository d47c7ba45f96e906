package stripe

import (
	"context"
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
		SecretKey: "sk_test_key",
		Endpoint:  server.URL,
	}, observability.NewTracer(""), zap.NewNop())
	return client.(*Client)
}

func TestCreateCheckoutSession_BuildsSubscriptionForm(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "subscription", r.PostForm.Get("mode"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "Premium Subscription", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "month", r.PostForm.Get("line_items[0][price_data][recurring][interval]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "https://app.example.com/dashboard", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://app.example.com/premium", r.PostForm.Get("cancel_url"))

		w.Write([]byte(`{"id":"cs_test_123"}`))
	})

	// Act
	sessionID, err := client.CreateCheckoutSession(context.Background(), "https://app.example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", sessionID)
}

func TestCreateCheckoutSession_APIErrorRaises(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"expired key"}}`))
	})

	// Act
	_, err := client.CreateCheckoutSession(context.Background(), "https://app.example.com")

	// Assert
	assert.Error(t, err)
}
