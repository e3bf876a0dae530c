package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-stock-bot/internal/bot/dto"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/utils"
)

const (
	alphaVantageDefaultBaseURL = "https://www.alphavantage.co"
	// free tier allows 5 requests per minute
	alphaVantageDefaultPerMinute = 5
)

type alphaVantageRepository struct {
	baseURL string
	apiKey  string
	fetcher *httpFetcher
	log     *logger.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewAlphaVantageRepository creates a backend for the Alpha Vantage daily time series.
// Options: key (required), base_url, timeout, max_request_per_minute.
func NewAlphaVantageRepository(opts Options, loc *time.Location, log *logger.Logger) (ShareInfoRepository, error) {
	apiKey := opts.String("key", "")
	if apiKey == "" {
		return nil, errors.New("alphavantage: provider option key is required")
	}
	fetcher, err := newHTTPFetcher("alphavantage", opts, alphaVantageDefaultPerMinute, log)
	if err != nil {
		return nil, err
	}
	return &alphaVantageRepository{
		baseURL: strings.TrimRight(opts.String("base_url", alphaVantageDefaultBaseURL), "/"),
		apiKey:  apiKey,
		fetcher: fetcher,
		log:     log,
		loc:     loc,
		now:     time.Now,
	}, nil
}

func (r *alphaVantageRepository) GetShareInfo(ctx context.Context, symbol string) (*dto.ShareInfo, error) {
	query := url.Values{}
	query.Set("function", "TIME_SERIES_DAILY")
	query.Set("symbol", symbol)
	query.Set("apikey", r.apiKey)

	body, err := r.fetcher.get(ctx, r.baseURL+"/query?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var response dto.AlphaVantageDailyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("alphavantage: failed to decode time series for %s: %w", symbol, err)
	}
	switch {
	case response.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage: %s", response.ErrorMessage)
	case response.Note != "":
		return nil, fmt.Errorf("alphavantage: %s", response.Note)
	case response.Information != "":
		return nil, fmt.Errorf("alphavantage: %s", response.Information)
	}

	// "2018-03-14" or "2018-03-14 15:10:45"
	lastTradeDate, _, _ := strings.Cut(response.MetaData.LastRefreshed, " ")
	today := utils.DateIn(r.now(), r.loc)
	if lastTradeDate != today {
		r.log.InfoContext(ctx, "Last trade date is not today",
			logger.StringField("symbol", symbol),
			logger.StringField("last_trade_date", lastTradeDate),
			logger.StringField("today", today))
		return nil, ErrNoFreshData
	}

	todayEntry, ok := response.TimeSeries[today]
	if !ok {
		return nil, fmt.Errorf("alphavantage: time series for %s has no entry for %s", symbol, today)
	}

	dates := make([]string, 0, len(response.TimeSeries))
	for date := range response.TimeSeries {
		if date < today {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("alphavantage: time series for %s has no previous session", symbol)
	}
	sort.Strings(dates)
	prevEntry := response.TimeSeries[dates[len(dates)-1]]

	prevClose, err := strconv.ParseFloat(prevEntry.Close, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage: invalid previous close %q: %w", prevEntry.Close, err)
	}
	price, err := strconv.ParseFloat(todayEntry.Close, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage: invalid close %q: %w", todayEntry.Close, err)
	}
	var open *float64
	if v, err := strconv.ParseFloat(todayEntry.Open, 64); err == nil {
		open = &v
	}

	info := dto.NewShareInfo(symbol, today, prevClose, open, price, "", "")
	r.log.InfoContext(ctx, "Share info", logger.Field("share_info", info))
	return info, nil
}
