package nlu

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUnderstand(t *testing.T) {
	var gotReq understandRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/understand", r.URL.Path)
		require.NoError(t, json.UnmarshalRead(r.Body, &gotReq))

		w.Header().Set("Content-Type", "application/json")
		_ = json.MarshalWrite(w, assistant.Interpretation{
			Tag:    assistant.TagFindContact,
			Fields: map[string]any{"query": "sarah"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger())

	in, err := client.Understand(context.Background(), "find contact sarah", true)
	require.NoError(t, err)

	assert.Equal(t, "find contact sarah", gotReq.Command)
	assert.True(t, gotReq.Privileged)
	assert.Equal(t, assistant.TagFindContact, in.Tag)
	assert.Equal(t, "sarah", in.Fields["query"])
}

func TestUnderstand_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger())

	_, err := client.Understand(context.Background(), "anything", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestUnderstand_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, testLogger())

	_, err := client.Understand(context.Background(), "anything", false)
	require.Error(t, err)
}

func TestUnderstand_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 10*time.Second, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Understand(ctx, "anything", false)
	require.Error(t, err)
}
