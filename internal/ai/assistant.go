// Package ai wraps the Gemini generateContent API for the small set of
// copywriting helpers the board offers. Every helper degrades to a fixed
// fallback string so the UI never has to branch on AI availability.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 1024
	defaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
)

// Fallback strings shown when the AI is unavailable.
const (
	FallbackKeyMissing = "AI Key Missing"
	FallbackNoIdeas    = "Could not generate ideas."
	FallbackError      = "Error connecting to AI assistant."
	FallbackSentiment  = "neutral"
)

// Assistant calls the Gemini API for marketing copy suggestions.
type Assistant struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
}

// New creates an assistant. An empty apiKey is allowed; every helper then
// returns its key-missing fallback.
func New(apiKey, modelName string, maxTokens int) *Assistant {
	if modelName == "" {
		modelName = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Assistant{
		apiKey:    apiKey,
		model:     modelName,
		maxTokens: maxTokens,
		baseURL:   defaultBaseURL,
		client:    &http.Client{},
	}
}

// Enabled reports whether an API key is configured.
func (a *Assistant) Enabled() bool {
	return a.apiKey != ""
}

// GenerateTaskIdeas enhances a task description with marketing angles.
func (a *Assistant) GenerateTaskIdeas(ctx context.Context, description string) string {
	if a.apiKey == "" {
		return FallbackKeyMissing
	}

	prompt := fmt.Sprintf(
		"You are a creative marketing assistant. Enhance the following task "+
			"description or provide 3 creative marketing angles for it. "+
			"Keep it punchy and use emojis. Input: %q", description)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("generating task ideas")
		return FallbackError
	}
	if text == "" {
		return FallbackNoIdeas
	}
	return text
}

// GenerateCaption writes a social caption for the given topic and tone.
func (a *Assistant) GenerateCaption(ctx context.Context, topic, tone string) string {
	if a.apiKey == "" {
		return FallbackKeyMissing
	}

	prompt := fmt.Sprintf(
		"Write an engaging Instagram caption about: %q. Tone: %s. "+
			"Include emojis and 5 relevant hashtags. Keep it under 150 words.",
		topic, tone)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("generating caption")
		return FallbackError
	}
	if text == "" {
		return FallbackNoIdeas
	}
	return text
}

// AnalyzeSentiment classifies free text as happy, neutral, or concerned.
// Any failure reads as neutral.
func (a *Assistant) AnalyzeSentiment(ctx context.Context, text string) string {
	if a.apiKey == "" {
		return FallbackSentiment
	}

	prompt := fmt.Sprintf(
		"Analyze the sentiment of this text and return ONLY one word: "+
			`"happy", "neutral", or "concerned". Text: %q`, text)

	result, err := a.generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("analyzing sentiment")
		return FallbackSentiment
	}

	result = strings.ToLower(strings.TrimSpace(result))
	switch result {
	case "happy", "neutral", "concerned":
		return result
	default:
		return FallbackSentiment
	}
}

// generate makes a single generateContent request and returns the first
// candidate's text.
func (a *Assistant) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Contents: []apiContent{
			{Parts: []apiPart{{Text: prompt}}},
		},
		GenerationConfig: &apiGenerationConfig{
			MaxOutputTokens: a.maxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// --- Gemini API types ---

type apiRequest struct {
	Contents         []apiContent         `json:"contents"`
	GenerationConfig *apiGenerationConfig `json:"generationConfig,omitempty"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type apiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type apiResponse struct {
	Candidates []struct {
		Content      apiContent `json:"content"`
		FinishReason string     `json:"finishReason"`
	} `json:"candidates"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
