package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T, handler http.HandlerFunc) *Assistant {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a := New("test-key", "", 0)
	a.baseURL = srv.URL
	return a
}

func textResponse(text string) []byte {
	resp := apiResponse{}
	resp.Candidates = append(resp.Candidates, struct {
		Content      apiContent `json:"content"`
		FinishReason string     `json:"finishReason"`
	}{
		Content: apiContent{Role: "model", Parts: []apiPart{{Text: text}}},
	})
	out, _ := json.Marshal(resp)
	return out
}

func TestGenerateTaskIdeas(t *testing.T) {
	var gotPath, gotKey string
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Write(textResponse("🔥 Angle 1: behind the scenes"))
	})

	out := a.GenerateTaskIdeas(context.Background(), "promote the spring sale")

	assert.Equal(t, "🔥 Angle 1: behind the scenes", out)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestGenerateTaskIdeasWithoutKey(t *testing.T) {
	a := New("", "", 0)

	out := a.GenerateTaskIdeas(context.Background(), "anything")

	assert.Equal(t, FallbackKeyMissing, out)
	assert.False(t, a.Enabled())
}

func TestGenerateCaptionServerError(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	out := a.GenerateCaption(context.Background(), "new store opening", "excited")

	assert.Equal(t, FallbackError, out)
}

func TestGenerateCaptionEmptyCandidates(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	out := a.GenerateCaption(context.Background(), "topic", "fun")

	assert.Equal(t, FallbackNoIdeas, out)
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"happy", "Happy\n", "happy"},
		{"concerned", "concerned", "concerned"},
		{"unexpected word", "ecstatic", FallbackSentiment},
		{"empty", "", FallbackSentiment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write(textResponse(tt.payload))
			})

			got := a.AnalyzeSentiment(context.Background(), "the campaign flopped")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSendsPrompt(t *testing.T) {
	var req apiRequest
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Write(textResponse("ok"))
	})

	_, err := a.generate(context.Background(), "say ok")
	require.NoError(t, err)

	require.Len(t, req.Contents, 1)
	require.Len(t, req.Contents[0].Parts, 1)
	assert.Equal(t, "say ok", req.Contents[0].Parts[0].Text)
	require.NotNil(t, req.GenerationConfig)
	assert.Equal(t, defaultMaxTokens, req.GenerationConfig.MaxOutputTokens)
}
