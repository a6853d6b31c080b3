package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(ClientConfig{})
	assert.Error(t, err)
}

func TestOpenAIClient_Chat(t *testing.T) {
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Looking good."}}]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	reply, err := client.Chat(context.Background(), []Message{
		{Role: "user", Content: "How are sales?"},
	}, Context{TransactionCount: 3})
	require.NoError(t, err)
	assert.Equal(t, "Looking good.", reply)

	// System prompt with the business context goes first, then the conversation.
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "3 transactions")
	assert.Equal(t, "How are sales?", gotReq.Messages[1].Content)
}

func TestOpenAIClient_Chat_Errors(t *testing.T) {
	type testCase struct {
		name   string
		status int
		body   string
	}

	tests := []testCase{
		{
			name:   "HTTPError",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"rate limited"}}`,
		},
		{
			name:   "APIError",
			status: http.StatusOK,
			body:   `{"error":{"message":"invalid model"}}`,
		},
		{
			name:   "NoChoices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewOpenAIClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Chat(context.Background(), nil, Context{})
			assert.Error(t, err)
		})
	}
}
