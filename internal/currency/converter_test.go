package currency_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ath-12/ai-planner-final/internal/currency"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// rateServer returns a test server serving a fixed pair-rate payload and a
// counter of how many requests actually reached it.
func rateServer(t *testing.T, payload string, status int) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

const goodPayload = `{"result":"success","base_code":"USD","target_code":"INR","conversion_rate":83.25}`

// ---- identity fast paths ---------------------------------------------------

func TestGetRate_SameCurrency_NoNetworkCall(t *testing.T) {
	srv, calls := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "INR", "INR")

	assert.Equal(t, 1.0, quote.Rate)
	assert.Equal(t, "INR", quote.DestCurrency)
	assert.EqualValues(t, 0, calls.Load())
}

func TestGetRate_EmptyDest_ResolvesToHome(t *testing.T) {
	srv, calls := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "INR", "")

	assert.Equal(t, 1.0, quote.Rate)
	assert.Equal(t, "INR", quote.DestCurrency)
	assert.EqualValues(t, 0, calls.Load())
}

func TestGetRate_NoAPIKey_IdentityWithoutNetwork(t *testing.T) {
	srv, calls := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "INR")

	assert.Equal(t, 1.0, quote.Rate)
	assert.Equal(t, "INR", quote.DestCurrency)
	assert.EqualValues(t, 0, calls.Load())
}

// ---- successful lookups ----------------------------------------------------

func TestGetRate_Success(t *testing.T) {
	srv, _ := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "INR")

	assert.Equal(t, 83.25, quote.Rate)
	assert.Equal(t, "INR", quote.DestCurrency)
	assert.Equal(t, "USD", quote.HomeCurrency)
}

func TestGetRate_SecondCallServedFromCache(t *testing.T) {
	srv, calls := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	first := conv.GetRate(context.Background(), "USD", "INR")
	second := conv.GetRate(context.Background(), "USD", "INR")

	require.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetRate_CacheKeyedByPair(t *testing.T) {
	srv, calls := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	conv.GetRate(context.Background(), "USD", "INR")
	conv.GetRate(context.Background(), "EUR", "INR")

	// Different pairs must not share a cache slot.
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetRate_NormalizesCase(t *testing.T) {
	srv, calls := rateServer(t, goodPayload, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	conv.GetRate(context.Background(), "usd", "inr")
	conv.GetRate(context.Background(), "USD", "INR")

	assert.EqualValues(t, 1, calls.Load())
}

// ---- failure fallbacks -----------------------------------------------------

func TestGetRate_HTTPError_Identity(t *testing.T) {
	srv, _ := rateServer(t, `{"result":"error"}`, http.StatusInternalServerError)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "INR")

	assert.Equal(t, 1.0, quote.Rate)
	assert.Equal(t, "INR", quote.DestCurrency)
}

func TestGetRate_ProviderFailureDiscriminator_Identity(t *testing.T) {
	srv, _ := rateServer(t, `{"result":"error","error-type":"unsupported-code"}`, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "XXX")

	assert.Equal(t, 1.0, quote.Rate)
	assert.Equal(t, "XXX", quote.DestCurrency)
}

func TestGetRate_MalformedBody_Identity(t *testing.T) {
	srv, _ := rateServer(t, `{not json`, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "INR")

	assert.Equal(t, 1.0, quote.Rate)
}

func TestGetRate_NonPositiveRate_Identity(t *testing.T) {
	srv, _ := rateServer(t, `{"result":"success","conversion_rate":0}`, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "INR")

	assert.Equal(t, 1.0, quote.Rate)
}

func TestGetRate_FailureNotCached(t *testing.T) {
	srv, calls := rateServer(t, `{not json`, http.StatusOK)
	conv := currency.New("key", srv.URL, time.Second, discardLogger())

	conv.GetRate(context.Background(), "USD", "INR")
	conv.GetRate(context.Background(), "USD", "INR")

	// Each call should retry the fetch; identity fallbacks are never cached.
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetRate_Timeout_Identity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	conv := currency.New("key", srv.URL, 20*time.Millisecond, discardLogger())

	quote := conv.GetRate(context.Background(), "USD", "INR")

	assert.Equal(t, 1.0, quote.Rate)
	assert.Equal(t, "INR", quote.DestCurrency)
}
