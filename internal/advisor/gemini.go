package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

var ErrNotConfigured = fmt.Errorf("gemini api key missing: %w", apperr.ErrUnavailable)

// Gemini talks to the generateContent REST endpoint with a JSON response schema.
type Gemini struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	model        string
	keywordModel string
}

type GeminiConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	KeywordModel string
	Timeout      time.Duration
}

func NewGemini(cfg GeminiConfig) *Gemini {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Gemini{
		client:       &http.Client{Timeout: timeout},
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		keywordModel: cfg.KeywordModel,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
	ResponseSchema   any    `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var suggestionSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"praise":      map[string]any{"type": "STRING"},
		"suggestions": map[string]any{"type": "STRING"},
	},
	"required": []string{"praise", "suggestions"},
}

var keywordSchema = map[string]any{
	"type":  "ARRAY",
	"items": map[string]any{"type": "STRING"},
}

// generate sends prompt to model and decodes the JSON answer into out.
func (g *Gemini) generate(ctx context.Context, model, prompt string, schema, out any) error {
	if g.apiKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling gemini: %w: %w", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gemini returned %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(msg)), apperr.ErrUnavailable)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("decoding gemini response: %w: %w", apperr.ErrUnavailable, err)
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("gemini returned no candidates: %w", apperr.ErrUnavailable)
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decoding gemini answer: %w: %w", apperr.ErrUnavailable, err)
	}

	return nil
}

type Suggestion struct {
	Praise      string `json:"praise"`
	Suggestions string `json:"suggestions"`
}

func (g *Gemini) Suggest(ctx context.Context, snap Snapshot) (*Suggestion, error) {
	var s Suggestion
	if err := g.generate(ctx, g.model, suggestionPrompt(snap), suggestionSchema, &s); err != nil {
		return nil, err
	}

	if s.Praise == "" && s.Suggestions == "" {
		return nil, errors.Join(apperr.ErrUnavailable, errors.New("empty suggestion"))
	}

	return &s, nil
}

// Keywords asks for 3 to 7 taxonomy topics describing text. Unknown topics are dropped.
func (g *Gemini) Keywords(ctx context.Context, text string) ([]string, error) {
	var raw []string
	if err := g.generate(ctx, g.keywordModel, keywordPrompt(text), keywordSchema, &raw); err != nil {
		return nil, err
	}

	return FilterTopics(raw), nil
}

func keywordPrompt(text string) string {
	return fmt.Sprintf(`Analyze this financial community post and identify which of the following financial topics are most relevant to it.

Post content:
%s

Available financial topics (choose ONLY from these):
%s

Select %d-%d topics from the list above that best match the content of this post. Return ONLY topics from the provided list that are relevant. If the post covers multiple areas, include all relevant topics.`,
		text, strings.Join(Topics, ", "), minKeywords, maxKeywords)
}
