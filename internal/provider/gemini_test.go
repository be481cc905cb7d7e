package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

var lakers = []domain.Team{
	{ID: "NBA-los-angeles-lakers", Name: "Los Angeles Lakers", League: "NBA"},
}

func fixedNow() time.Time {
	return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
}

// candidateBody wraps text the way generateContent responses do.
func candidateBody(t *testing.T, text string) []byte {
	t.Helper()
	raw, err := sonic.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	require.NoError(t, err)
	return raw
}

func newTestGemini(srv *httptest.Server) *Gemini {
	return NewGemini(GeminiConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gemini-test",
		Now:     fixedNow,
	})
}

func TestGemini_FetchPreview(t *testing.T) {
	var gotPath, gotKey string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write(candidateBody(t,
			`[{"matchup":"Lakers vs Warriors","time":"7:00 PM PT","broadcaster":"ESPN"}]`))
	}))
	defer srv.Close()

	games, err := newTestGemini(srv).FetchPreview(context.Background(), lakers, "America/Los_Angeles")
	require.NoError(t, err)
	require.Equal(t, []domain.GamePreview{
		{Matchup: "Lakers vs Warriors", Time: "7:00 PM PT", Broadcaster: "ESPN"},
	}, games)

	require.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	require.Equal(t, "test-key", gotKey)

	var req generateRequest
	require.NoError(t, sonic.Unmarshal(gotBody, &req))
	require.Len(t, req.Contents, 1)
	prompt := req.Contents[0].Parts[0].Text
	require.Contains(t, prompt, "Los Angeles Lakers (NBA)")
	require.Contains(t, prompt, "America/Los_Angeles")
	// Date must be rendered in the user's zone, not the host's.
	require.Contains(t, prompt, "Monday, January 1, 2024")
	require.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
}

func TestGemini_FetchSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(candidateBody(t,
			`[{"matchup":"India vs Australia","score":"India won by 20 runs","detailsLink":"https://example.com/g1"}]`))
	}))
	defer srv.Close()

	results, err := newTestGemini(srv).FetchSummary(context.Background(), lakers)
	require.NoError(t, err)
	require.Equal(t, []domain.GameSummary{
		{Matchup: "India vs Australia", Score: "India won by 20 runs", DetailsLink: "https://example.com/g1"},
	}, results)
}

func TestGemini_EmptyListIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(candidateBody(t, `[]`))
	}))
	defer srv.Close()

	games, err := newTestGemini(srv).FetchPreview(context.Background(), lakers, "America/Los_Angeles")
	require.NoError(t, err)
	require.NotNil(t, games)
	require.Empty(t, games)
}

func TestGemini_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).FetchPreview(context.Background(), lakers, "America/Los_Angeles")
	require.Error(t, err)
}

func TestGemini_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).FetchSummary(context.Background(), lakers)
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGemini_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(candidateBody(t, `{"not":"an array"`))
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).FetchPreview(context.Background(), lakers, "America/Los_Angeles")
	require.Error(t, err)
}

func TestGemini_InvalidZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("provider must not be called with an invalid zone")
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).FetchPreview(context.Background(), lakers, "Not/AZone")
	require.Error(t, err)
}
