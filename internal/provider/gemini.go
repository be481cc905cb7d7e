package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

const (
	defaultBaseURL   = "https://generativelanguage.googleapis.com"
	defaultModel     = "gemini-3-pro-preview"
	defaultTimeout   = 60 * time.Second
	maxResponseBytes = 1 << 20
)

// GeminiConfig configures the Gemini-backed provider.
type GeminiConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	Logger     *zap.Logger
	Now        func() time.Time
}

// Gemini asks the Gemini generateContent API, with search grounding, for
// structured previews and summaries of today's games.
type Gemini struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *zap.Logger
	now        func() time.Time
}

// NewGemini builds a provider from cfg, filling in defaults.
func NewGemini(cfg GeminiConfig) *Gemini {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Gemini{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		log:        log,
		now:        now,
	}
}

// --- wire types ---

type generateRequest struct {
	Contents         []reqContent      `json:"contents"`
	Tools            []reqTool         `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type reqContent struct {
	Parts []reqPart `json:"parts"`
}

type reqPart struct {
	Text string `json:"text"`
}

type reqTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
	ResponseSchema   any    `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []reqPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var previewSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"matchup":     map[string]any{"type": "STRING"},
			"time":        map[string]any{"type": "STRING"},
			"broadcaster": map[string]any{"type": "STRING"},
		},
		"required": []string{"matchup", "time", "broadcaster"},
	},
}

var summarySchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"matchup":     map[string]any{"type": "STRING"},
			"score":       map[string]any{"type": "STRING"},
			"detailsLink": map[string]any{"type": "STRING"},
		},
		"required": []string{"matchup", "score", "detailsLink"},
	},
}

// FetchPreview asks for today's schedule for the given teams, with game
// times converted to the user's timezone.
func (g *Gemini) FetchPreview(ctx context.Context, teams []domain.Team, timezone string) ([]domain.GamePreview, error) {
	today, err := domain.LocalDate(g.now(), timezone)
	if err != nil {
		return nil, fmt.Errorf("preview date: %w", err)
	}

	prompt := fmt.Sprintf(`Today is %s.
Check if any of the following sports teams have a scheduled game today: %s.
Search for the official schedule for today (date in %s).
Return a list of games. If a team is not playing today, do not include it.
If no teams are playing, return an empty list.
For each game found, provide:
- competing teams (e.g., "Lakers vs Warriors")
- time (Must be converted to %s timezone. E.g. "7:00 PM PT")
- where to watch (TV channel or streaming service)`,
		today, teamList(teams), timezone, timezone)

	text, err := g.generate(ctx, "preview", prompt, previewSchema)
	if err != nil {
		return nil, err
	}

	var games []domain.GamePreview
	if err := sonic.Unmarshal([]byte(text), &games); err != nil {
		return nil, fmt.Errorf("decode preview payload: %w", err)
	}
	if games == nil {
		games = []domain.GamePreview{}
	}
	return games, nil
}

// FetchSummary asks for final scores of games played today by the given
// teams. Summaries are timezone-agnostic.
func (g *Gemini) FetchSummary(ctx context.Context, teams []domain.Team) ([]domain.GameSummary, error) {
	today := g.now().Format("Monday, January 2, 2006")

	prompt := fmt.Sprintf(`Today is %s.
Find the final scores or current status for games played today by these teams: %s.
Search for the results.
Return a list of results.
For each game, provide:
- matchup (e.g. "India vs Australia")
- score (e.g. "India won by 20 runs" or "105 - 98")
- detailsLink (a valid URL to a google search or sports news page for this specific game)`,
		today, teamList(teams))

	text, err := g.generate(ctx, "summary", prompt, summarySchema)
	if err != nil {
		return nil, err
	}

	var results []domain.GameSummary
	if err := sonic.Unmarshal([]byte(text), &results); err != nil {
		return nil, fmt.Errorf("decode summary payload: %w", err)
	}
	if results == nil {
		results = []domain.GameSummary{}
	}
	return results, nil
}

// generate performs one generateContent call and returns the first candidate's
// text part, which is expected to be a JSON array per the response schema.
func (g *Gemini) generate(ctx context.Context, kind, prompt string, schema any) (string, error) {
	body, err := sonic.Marshal(generateRequest{
		Contents: []reqContent{{Parts: []reqPart{{Text: prompt}}}},
		Tools:    []reqTool{{}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini %s: unexpected status %d", kind, resp.StatusCode)
	}

	var out generateResponse
	if err := sonic.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.log.Debug("gemini call finished",
		zap.String("kind", kind),
		zap.Duration("took", time.Since(start)),
	)
	return text, nil
}

// teamList renders teams as "Name (League), ..." for prompts.
func teamList(teams []domain.Team) string {
	parts := make([]string, 0, len(teams))
	for _, t := range teams {
		parts = append(parts, fmt.Sprintf("%s (%s)", t.Name, t.League))
	}
	return strings.Join(parts, ", ")
}
