package plangen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientGenerate(t *testing.T) {
	var got GenerationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate/daily", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tasks":[{"title":"Post on X","description":"short"}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	tasks, err := client.Generate(context.Background(), GenerationRequest{
		Day:          9,
		Week:         2,
		DesiredCount: 3,
	})

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Post on X", tasks[0].Title)
	assert.Equal(t, 9, got.Day)
	assert.Equal(t, 3, got.DesiredCount)
}

func TestHTTPClientGenerateNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	_, err := client.Generate(context.Background(), GenerationRequest{Day: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)
}

func TestHTTPClientGenerateTransportError(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Generate(context.Background(), GenerationRequest{Day: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)
}

func TestHTTPClientGenerateGarbagePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	_, err := client.Generate(context.Background(), GenerationRequest{Day: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneratorMalformed)
}
