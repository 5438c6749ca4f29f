// Package research looks up booking links for a destination via a Custom
// Search style endpoint. Enrichment is strictly best-effort: without
// credentials it is a no-op, and any failure yields an empty list with an
// informational log line. The planning flow never waits on, retries, or
// fails because of this client.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// DefaultMaxResults bounds a lookup when the caller does not say otherwise.
const DefaultMaxResults = 6

// maxResultsCap is the hard upper bound accepted from callers.
const maxResultsCap = 8

// Client queries the search endpoint. Safe for concurrent use.
type Client struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
	log      *slog.Logger
}

// New constructs a Client. Empty apiKey or engineID disables lookups.
func New(apiKey, engineID, baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Enabled reports whether the client has the credentials to do anything.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.engineID != ""
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Mime    string `json:"mime"`
	} `json:"items"`
}

// Research returns up to maxResults link records for the query, in the
// relevance order the search source returned them. It never returns an
// error; absent credentials or any failure produce an empty slice.
func (c *Client) Research(ctx context.Context, query string, maxResults int) []domain.LinkRecord {
	if !c.Enabled() {
		return []domain.LinkRecord{}
	}
	if maxResults <= 0 || maxResults > maxResultsCap {
		maxResults = DefaultMaxResults
	}

	records, err := c.search(ctx, buildQuery(query), maxResults)
	if err != nil {
		c.log.Info("link research unavailable, continuing without links",
			"query", query, "error", err)
		return []domain.LinkRecord{}
	}
	return records
}

// search performs one HTTP GET against the search endpoint.
func (c *Client) search(ctx context.Context, query string, maxResults int) ([]domain.LinkRecord, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", maxResults))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search endpoint status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	seen := make(map[string]bool, len(body.Items))
	records := make([]domain.LinkRecord, 0, maxResults)
	for _, item := range body.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		// Skip PDFs and other non-page hits.
		if item.Mime != "" && !strings.Contains(item.Mime, "html") {
			continue
		}
		seen[item.Link] = true
		records = append(records, domain.LinkRecord{
			Title: item.Title,
			URL:   item.Link,
			Date:  snippetDate(item.Snippet),
		})
		if len(records) == maxResults {
			break
		}
	}
	return records, nil
}

// buildQuery shapes the free-text query towards official sites and major
// resellers, which is where booking links actually live.
func buildQuery(query string) string {
	query = regexp.MustCompile(`\s+`).ReplaceAllString(strings.TrimSpace(query), " ")
	return query + " booking official site OR tickets"
}

// snippetDate extracts the "Jan 2, 2006" date prefix search snippets often
// carry, or "" when the snippet starts with ordinary text.
var snippetDatePattern = regexp.MustCompile(`^([A-Z][a-z]{2} \d{1,2}, \d{4})`)

func snippetDate(snippet string) string {
	if m := snippetDatePattern.FindStringSubmatch(snippet); m != nil {
		return m[1]
	}
	return ""
}
