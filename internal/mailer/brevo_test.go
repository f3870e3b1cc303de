package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/config"
)

func testMessage() Message {
	return Message{
		ToEmail:     "asha@example.com",
		ToName:      "Asha Karki",
		Subject:     "Next Step: Complete Your Payment to Join",
		HTMLContent: "<p>hi</p>",
		TextContent: "hi",
	}
}

func newTestBrevo(t *testing.T, handler http.HandlerFunc) (*Brevo, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.EmailConfig{
		BrevoAPIKey:  "test-key",
		BrevoBaseURL: server.URL,
		FromEmail:    "noreply@medicare.com",
		FromName:     "Medical Admin",
	}
	return NewBrevo(cfg, zap.NewNop()), server
}

func TestSendPostsToTransactionalEndpoint(t *testing.T) {
	var gotPath, gotKey string
	var gotBody brevoRequest

	brevo, _ := newTestBrevo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<2024@smtp-relay.mailin.fr>"}`))
	})

	id, err := brevo.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "<2024@smtp-relay.mailin.fr>", id)

	assert.Equal(t, "/v3/smtp/email", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "noreply@medicare.com", gotBody.Sender.Email)
	require.Len(t, gotBody.To, 1)
	assert.Equal(t, "asha@example.com", gotBody.To[0].Email)
	assert.Equal(t, "Next Step: Complete Your Payment to Join", gotBody.Subject)
}

func TestSendProviderError(t *testing.T) {
	brevo, _ := newTestBrevo(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	})

	_, err := brevo.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendWithoutAPIKey(t *testing.T) {
	brevo := NewBrevo(config.EmailConfig{BrevoBaseURL: "http://127.0.0.1:0"}, zap.NewNop())

	_, err := brevo.Send(context.Background(), testMessage())
	assert.Error(t, err)
}
