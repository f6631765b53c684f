package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmlens/internal/fault"
	"palmlens/internal/llm"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse(`{"overallScore": 66}`)))
	}))
	defer server.Close()

	engine := New("sk-test", "gpt-4o", option.WithBaseURL(server.URL))

	reply, err := engine.Generate(context.Background(), llm.GenerateRequest{
		Prompt: "read this palm",
		Images: []llm.Image{{Data: []byte{0xFF, 0xD8}, MimeType: "image/jpeg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"overallScore": 66}`, reply)
}

func TestGenerateMissingKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	engine := New("", "gpt-4o", option.WithBaseURL(server.URL))

	_, err := engine.Generate(context.Background(), llm.GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.Configuration))
	assert.Zero(t, calls.Load())
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"id": "chatcmpl-1", "object": "chat.completion", "choices": []any{}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	engine := New("sk-test", "gpt-4o", option.WithBaseURL(server.URL))

	_, err := engine.Generate(context.Background(), llm.GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.UpstreamEmpty))
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	engine := New("sk-bad", "gpt-4o", option.WithBaseURL(server.URL))

	_, err := engine.Generate(context.Background(), llm.GenerateRequest{Prompt: "hi"})
	assert.Error(t, err)
}
