// Package translate wraps a LibreTranslate compatible API. Failures never
// reach the caller: the original text comes back instead.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
)

type Config struct {
	BaseURL         string
	APIKey          string
	DefaultLanguage string
	Timeout         time.Duration
}

type Translator struct {
	client          *http.Client
	baseURL         string
	apiKey          string
	defaultLanguage string
}

func New(cfg Config) *Translator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	def := cfg.DefaultLanguage
	if def == "" {
		def = "en"
	}

	return &Translator{
		client:          &http.Client{Timeout: timeout},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		defaultLanguage: def,
	}
}

type Result struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Translations []string `json:"translations"`
}

type translateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
	APIKey string   `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText []string `json:"translatedText"`
	Error          string   `json:"error"`
}

// Translate translates a single text.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, *Result, error) {
	res, err := t.Batch(ctx, []string{text}, source, target)
	if err != nil {
		return "", nil, err
	}

	return res.Translations[0], res, nil
}

// Batch translates texts in one call. Only unknown language codes are errors.
func (t *Translator) Batch(ctx context.Context, texts []string, source, target string) (*Result, error) {
	source, target, err := t.languages(source, target)
	if err != nil {
		return nil, err
	}

	res := &Result{Source: source, Target: target, Translations: texts}

	if source == target || target == t.defaultLanguage || allBlank(texts) {
		return res, nil
	}

	translated, err := t.call(ctx, texts, source, target)
	if err != nil {
		slog.Warn("translation failed, returning original text", "source", source, "target", target, "error", err)

		return res, nil
	}

	res.Translations = translated

	return res, nil
}

func (t *Translator) languages(source, target string) (string, string, error) {
	if source == "" {
		source = t.defaultLanguage
	}

	if target == "" {
		target = t.defaultLanguage
	}

	src, err := Canonical(source)
	if err != nil {
		return "", "", err
	}

	dst, err := Canonical(target)
	if err != nil {
		return "", "", err
	}

	return src, dst, nil
}

func allBlank(texts []string) bool {
	for _, s := range texts {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}

	return true
}

func (t *Translator) call(ctx context.Context, texts []string, source, target string) ([]string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      texts,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: t.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling translator: %w: %w", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translator returned %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(msg)), apperr.ErrUnavailable)
	}

	var tr translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decoding translator response: %w: %w", apperr.ErrUnavailable, err)
	}

	if len(tr.TranslatedText) != len(texts) {
		return nil, fmt.Errorf("translator returned %d texts for %d: %w", len(tr.TranslatedText), len(texts), apperr.ErrUnavailable)
	}

	return tr.TranslatedText, nil
}
