package gemini_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrine/pkg/gemini"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_NoKey(t *testing.T) {
	assert.Nil(t, gemini.NewClient(gemini.Config{}))
}

func TestClient_GenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Uma tábua "},{"text":"única."}]}}]}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(gemini.Config{APIKey: "k-123", Model: "test-model", BaseURL: srv.URL})
	text, err := client.GenerateText(context.Background(), "descreva")
	require.NoError(t, err)
	assert.Equal(t, "Uma tábua única.", text)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "k-123", gotKey)
	assert.NotContains(t, gotBody, "generationConfig")
}

func TestClient_GenerateJSON(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"name\":\"Copo\"}"}]}}]}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(gemini.Config{APIKey: "k", BaseURL: srv.URL})
	schema := map[string]interface{}{"type": "OBJECT"}
	text, err := client.GenerateJSON(context.Background(), "extraia", schema)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Copo"}`, text)

	cfg, ok := gotBody["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
	assert.Equal(t, schema, cfg["responseSchema"])
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(gemini.Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := client.GenerateText(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestClient_CanceledContext(t *testing.T) {
	client := gemini.NewClient(gemini.Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GenerateText(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
