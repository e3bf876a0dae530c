package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testToday = time.Date(2026, 10, 19, 21, 0, 0, 0, time.UTC)
	testLater = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
)

func newJSONServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

const yahooChartBody = `{"chart":{"result":[{
	"meta":{"symbol":"AAPL","currency":"USD","regularMarketPrice":101.5,"regularMarketTime":1792440000,"chartPreviousClose":98.0},
	"timestamp":[1792157400,1792416600],
	"indicators":{"quote":[{"open":[99.0,100.2],"close":[100.0,101.5]}]}
}],"error":null}}`

func newYahoo(t *testing.T, ts *httptest.Server, now time.Time) *yahooFinanceRepository {
	t.Helper()
	repo, err := NewYahooFinanceRepository(Options{"base_url": ts.URL}, time.UTC, logger.NewNop())
	require.NoError(t, err)
	y := repo.(*yahooFinanceRepository)
	y.now = func() time.Time { return now }
	return y
}

func TestYahooFinanceRepository_GetShareInfo(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusOK, yahooChartBody, func(r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "5d", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
	})

	info, err := newYahoo(t, ts, testToday).GetShareInfo(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", info.Symbol)
	assert.Equal(t, "2026-10-19", info.TradeDate)
	assert.Equal(t, 100.0, info.PrevClose)
	assert.Equal(t, 101.5, info.Price)
	require.NotNil(t, info.Open)
	assert.Equal(t, 100.2, *info.Open)
	assert.Equal(t, "+1.50", info.Change)
	assert.Equal(t, "+1.50%", info.ChangePercent)
	assert.Equal(t, "https://finance.yahoo.com/quote/AAPL", info.PageURL)
	assert.True(t, info.HasChart())
}

func TestYahooFinanceRepository_Stale(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusOK, yahooChartBody, nil)

	_, err := newYahoo(t, ts, testLater).GetShareInfo(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNoFreshData)
}

func TestYahooFinanceRepository_Error(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, nil)

	_, err := newYahoo(t, ts, testToday).GetShareInfo(context.Background(), "NOPE")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFreshData)
	assert.Contains(t, err.Error(), "404")
}

func TestYahooFinanceRepository_ChartError(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusOK, `{"chart":{"result":[],"error":{"code":"Bad Request","description":"Invalid input"}}}`, nil)

	_, err := newYahoo(t, ts, testToday).GetShareInfo(context.Background(), "AAPL")
	require.EqualError(t, err, "yahoo: Bad Request: Invalid input")
}

const alphaVantageBody = `{
	"Meta Data":{"1. Information":"Daily Prices","2. Symbol":"MSFT","3. Last Refreshed":"2026-10-19","5. Time Zone":"US/Eastern"},
	"Time Series (Daily)":{
		"2026-10-15":{"1. open":"90.0","2. high":"91.0","3. low":"89.0","4. close":"90.5000"},
		"2026-10-16":{"1. open":"99.0","2. high":"101.0","3. low":"98.0","4. close":"100.0000"},
		"2026-10-19":{"1. open":"100.5","2. high":"101.0","3. low":"94.0","4. close":"95.0000"}
	}
}`

func newAlphaVantage(t *testing.T, ts *httptest.Server, now time.Time) *alphaVantageRepository {
	t.Helper()
	repo, err := NewAlphaVantageRepository(Options{"base_url": ts.URL, "key": "demo", "max_request_per_minute": "0"}, time.UTC, logger.NewNop())
	require.NoError(t, err)
	a := repo.(*alphaVantageRepository)
	a.now = func() time.Time { return now }
	return a
}

func TestAlphaVantageRepository_GetShareInfo(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusOK, alphaVantageBody, func(r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		assert.Equal(t, "MSFT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "demo", r.URL.Query().Get("apikey"))
	})

	info, err := newAlphaVantage(t, ts, testToday).GetShareInfo(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, 100.0, info.PrevClose)
	assert.Equal(t, 95.0, info.Price)
	require.NotNil(t, info.Open)
	assert.Equal(t, 100.5, *info.Open)
	assert.Equal(t, "-5.00", info.Change)
	assert.Equal(t, "-5.00%", info.ChangePercent)
	assert.Equal(t, "N/A", info.PageURL)
	assert.Equal(t, "N/A", info.ChartURL)
}

func TestAlphaVantageRepository_Stale(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusOK, alphaVantageBody, nil)

	_, err := newAlphaVantage(t, ts, testLater).GetShareInfo(context.Background(), "MSFT")
	assert.ErrorIs(t, err, ErrNoFreshData)
}

func TestAlphaVantageRepository_RateLimitNote(t *testing.T) {
	t.Parallel()

	ts := newJSONServer(t, http.StatusOK, `{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, nil)

	_, err := newAlphaVantage(t, ts, testToday).GetShareInfo(context.Background(), "MSFT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call frequency")
}

func TestNewAlphaVantageRepository_RequiresKey(t *testing.T) {
	_, err := NewAlphaVantageRepository(Options{}, time.UTC, logger.NewNop())
	assert.Error(t, err)
}

func TestGoogleFinanceRepository_GetShareInfo(t *testing.T) {
	t.Parallel()

	body := "\n// [ {\"t\":\"GOOG\",\"e\":\"NASDAQ\",\"l\":\"1,020.50\",\"lt_dts\":\"2026-10-19T16:00:00Z\",\"c\":\"+20.50\",\"cp\":\"2.05\",\"pcls_fix\":\"1000\"} ]"
	ts := newJSONServer(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "/finance/info", r.URL.Path)
		assert.Equal(t, "GOOG", r.URL.Query().Get("q"))
	})

	repo, err := NewGoogleFinanceRepository(Options{"base_url": ts.URL}, time.UTC, logger.NewNop())
	require.NoError(t, err)
	g := repo.(*googleFinanceRepository)
	g.now = func() time.Time { return testToday }

	info, err := g.GetShareInfo(context.Background(), "GOOG")
	require.NoError(t, err)

	assert.Equal(t, 1000.0, info.PrevClose)
	assert.Equal(t, 1020.5, info.Price)
	assert.Nil(t, info.Open)
	assert.Equal(t, "N/A", info.OpenString())
	assert.Equal(t, "+20.50", info.Change)
	assert.Equal(t, "+2.05%", info.ChangePercent)

	g.now = func() time.Time { return testLater }
	_, err = g.GetShareInfo(context.Background(), "GOOG")
	assert.ErrorIs(t, err, ErrNoFreshData)
}
