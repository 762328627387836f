// Package news fetches personal finance articles from NewsAPI and trims them
// to the fields the clients display.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finwise/internal/apperr"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
)

const (
	DefaultQuery    = "finance tips OR personal finance OR money management OR budgeting OR saving money"
	DefaultCountry  = "in"
	defaultPageSize = 10
	maxPageSize     = 100
	lookback        = 7 * 24 * time.Hour
)

var ErrNotConfigured = fmt.Errorf("newsapi key missing: %w", apperr.ErrUnavailable)

var sortOrders = []string{"relevancy", "popularity", "publishedAt"}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	clock   clock.Clock
}

func NewClient(cfg Config, clk clock.Clock) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		clock:   clk,
	}
}

type Query struct {
	Query    string
	Language string
	SortBy   string
	PageSize int
	Page     int
	// From is a YYYY-MM-DD date; empty means a week ago.
	From string
}

type HeadlineQuery struct {
	Country  string
	Category string
	PageSize int
	Page     int
}

type Article struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage,omitempty"`
	PublishedAt string  `json:"publishedAt"`
	Source      string  `json:"source"`
	Author      *string `json:"author,omitempty"`
}

type Result struct {
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Query        string    `json:"query,omitempty"`
	FromDate     string    `json:"from_date,omitempty"`
}

type rawArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
}

type rawResponse struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []rawArticle `json:"articles"`
}

func pageParams(v url.Values, size, page int) {
	if size <= 0 {
		size = defaultPageSize
	}

	if page <= 0 {
		page = 1
	}

	v.Set("pageSize", strconv.Itoa(min(size, maxPageSize)))
	v.Set("page", strconv.Itoa(page))
}

// Everything searches all indexed articles, newest first by default.
func (c *Client) Everything(ctx context.Context, q Query) (*Result, error) {
	if q.Query == "" {
		q.Query = DefaultQuery
	}

	if q.Language == "" {
		q.Language = "en"
	}

	if q.SortBy == "" {
		q.SortBy = "publishedAt"
	}

	if !slices.Contains(sortOrders, q.SortBy) {
		return nil, apperr.Invalid("sort_by must be one of %s", strings.Join(sortOrders, ", "))
	}

	if q.From == "" {
		q.From = c.clock.Now().Add(-lookback).Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, q.From); err != nil {
		return nil, apperr.Invalid("from_date must be YYYY-MM-DD")
	}

	v := url.Values{}
	v.Set("q", q.Query)
	v.Set("language", q.Language)
	v.Set("sortBy", q.SortBy)
	v.Set("from", q.From)
	pageParams(v, q.PageSize, q.Page)

	raw, err := c.get(ctx, "/everything", v)
	if err != nil {
		return nil, err
	}

	return &Result{
		TotalResults: raw.TotalResults,
		Articles:     format(raw.Articles),
		Query:        q.Query,
		FromDate:     q.From,
	}, nil
}

// Headlines lists top business headlines for a country.
func (c *Client) Headlines(ctx context.Context, q HeadlineQuery) (*Result, error) {
	if q.Country == "" {
		q.Country = DefaultCountry
	}

	if q.Category == "" {
		q.Category = "business"
	}

	v := url.Values{}
	v.Set("country", q.Country)
	v.Set("category", q.Category)
	pageParams(v, q.PageSize, q.Page)

	raw, err := c.get(ctx, "/top-headlines", v)
	if err != nil {
		return nil, err
	}

	return &Result{TotalResults: raw.TotalResults, Articles: format(raw.Articles)}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*rawResponse, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling newsapi: %w: %w", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading newsapi response: %w: %w", apperr.ErrUnavailable, err)
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("newsapi returned %d: %w", resp.StatusCode, apperr.ErrUnavailable)
		}

		return nil, fmt.Errorf("decoding newsapi response: %w: %w", apperr.ErrUnavailable, err)
	}

	if raw.Status == "error" || resp.StatusCode != http.StatusOK {
		msg := raw.Message
		if msg == "" {
			msg = "unknown error from newsapi"
		}

		return nil, errors.Join(apperr.ErrUnavailable, fmt.Errorf("newsapi %s: %s", raw.Code, msg))
	}

	return &raw, nil
}

// format keeps the display fields and drops articles that have no title or
// link, including the placeholders NewsAPI leaves for removed content.
func format(raw []rawArticle) []Article {
	out := make([]Article, 0, len(raw))

	for _, a := range raw {
		if a.Title == "" || a.URL == "" || a.Title == "[Removed]" {
			continue
		}

		art := Article{
			Title:       a.Title,
			Description: "No description available",
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			PublishedAt: a.PublishedAt,
			Source:      "Unknown source",
			Author:      a.Author,
		}

		if a.Description != nil && *a.Description != "" {
			art.Description = *a.Description
		}

		if a.Source.Name != "" {
			art.Source = a.Source.Name
		}

		out = append(out, art)
	}

	return out
}
