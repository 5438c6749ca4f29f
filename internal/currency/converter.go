// Package currency resolves multiplicative exchange rates between the
// budget's entry currency and the destination currency.
//
// The converter is unable to fail: any problem (no credential, HTTP error,
// timeout, malformed payload) degrades to the identity rate 1.0 with a
// logged warning. A wrong-but-usable budget figure beats a dead planning
// request.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Ath-12/ai-planner-final/internal/domain"
)

// TTL is how long a fetched rate stays valid. Rates move slowly relative to
// trip planning; an hour of staleness is the cache's whole purpose.
const TTL = time.Hour

// Converter fetches and caches pair rates from an exchangerate-api style
// endpoint. Safe for concurrent use; the cache is read-mostly and
// last-writer-wins on refresh.
type Converter struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
	log     *slog.Logger
}

// New constructs a Converter. An empty apiKey disables network lookups
// entirely; every call resolves to the identity rate.
func New(apiKey, baseURL string, timeout time.Duration, log *slog.Logger) *Converter {
	return &Converter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   gocache.New(TTL, 10*time.Minute),
		log:     log,
	}
}

// pairResponse is the wire shape of the pair-rate endpoint.
type pairResponse struct {
	Result         string  `json:"result"`
	TargetCode     string  `json:"target_code"`
	ConversionRate float64 `json:"conversion_rate"`
}

// GetRate returns the multiplicative rate from home to dest plus the resolved
// destination code. It never returns an error: all failures resolve to the
// identity quote. Concurrent callers within the TTL window share one fetch
// result via the cache (a rare duplicate fetch under contention is harmless).
func (c *Converter) GetRate(ctx context.Context, home, dest string) domain.ExchangeQuote {
	home = strings.ToUpper(strings.TrimSpace(home))
	dest = strings.ToUpper(strings.TrimSpace(dest))
	if dest == "" {
		dest = home
	}

	if home == dest || c.apiKey == "" {
		return domain.Identity(home, dest)
	}

	key := home + "/" + dest
	if cached, ok := c.cache.Get(key); ok {
		q := cached.(domain.ExchangeQuote)
		return q
	}

	quote, err := c.fetch(ctx, home, dest)
	if err != nil {
		c.log.Warn("exchange rate lookup failed, using identity rate",
			"home", home, "dest", dest, "error", err)
		return domain.Identity(home, dest)
	}

	// Only successes are cached: a transient failure should not pin the
	// identity rate for a full hour.
	c.cache.Set(key, quote, gocache.DefaultExpiration)
	return quote
}

// fetch performs the single HTTP GET for a pair rate. One attempt, no
// retries: surfacing failure beats masking provider-side rate limits.
func (c *Converter) fetch(ctx context.Context, home, dest string) (domain.ExchangeQuote, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, home, dest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ExchangeQuote{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ExchangeQuote{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ExchangeQuote{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var body pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ExchangeQuote{}, fmt.Errorf("decode response: %w", err)
	}
	if body.Result != "success" {
		return domain.ExchangeQuote{}, fmt.Errorf("provider result %q", body.Result)
	}
	if body.ConversionRate <= 0 {
		return domain.ExchangeQuote{}, fmt.Errorf("non-positive rate %v", body.ConversionRate)
	}

	resolved := dest
	if body.TargetCode != "" {
		resolved = body.TargetCode
	}

	return domain.ExchangeQuote{HomeCurrency: home, DestCurrency: resolved, Rate: body.ConversionRate}, nil
}
