package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang-stock-bot/internal/bot/dto"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/utils"
)

const (
	yahooDefaultBaseURL = "https://query1.finance.yahoo.com"
	yahooPageURL        = "https://finance.yahoo.com/quote/%s"
	yahooChartURL       = "https://chart.finance.yahoo.com/t?s=%s&lang=en-US&region=US&width=400&height=240"
)

type yahooFinanceRepository struct {
	baseURL string
	fetcher *httpFetcher
	log     *logger.Logger
	loc     *time.Location
	now     func() time.Time
}

type yahooBar struct {
	date  string
	open  *float64
	close float64
}

// NewYahooFinanceRepository creates a backend for the Yahoo Finance chart API.
// Options: base_url, timeout, max_request_per_minute.
func NewYahooFinanceRepository(opts Options, loc *time.Location, log *logger.Logger) (ShareInfoRepository, error) {
	fetcher, err := newHTTPFetcher("yahoo", opts, 0, log)
	if err != nil {
		return nil, err
	}
	return &yahooFinanceRepository{
		baseURL: strings.TrimRight(opts.String("base_url", yahooDefaultBaseURL), "/"),
		fetcher: fetcher,
		log:     log,
		loc:     loc,
		now:     time.Now,
	}, nil
}

func (r *yahooFinanceRepository) GetShareInfo(ctx context.Context, symbol string) (*dto.ShareInfo, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", r.baseURL, url.PathEscape(symbol))
	body, err := r.fetcher.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("yahoo: failed to decode chart for %s: %w", symbol, err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart for %s", symbol)
	}
	result := response.Chart.Result[0]

	bars := r.bars(result)
	today := utils.DateIn(r.now(), r.loc)

	lastTradeDate := ""
	if result.Meta.RegularMarketTime > 0 {
		lastTradeDate = utils.DateIn(time.Unix(result.Meta.RegularMarketTime, 0), r.loc)
	} else if len(bars) > 0 {
		lastTradeDate = bars[len(bars)-1].date
	}
	if lastTradeDate != today {
		r.log.InfoContext(ctx, "Last trade date is not today",
			logger.StringField("symbol", symbol),
			logger.StringField("last_trade_date", lastTradeDate),
			logger.StringField("today", today))
		return nil, ErrNoFreshData
	}

	var (
		todayBar *yahooBar
		prevBar  *yahooBar
	)
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].date == today && todayBar == nil {
			todayBar = &bars[i]
			continue
		}
		if bars[i].date < today {
			prevBar = &bars[i]
			break
		}
	}

	prevClose := result.Meta.ChartPreviousClose
	if prevBar != nil {
		prevClose = prevBar.close
	}
	price := result.Meta.RegularMarketPrice
	var open *float64
	if todayBar != nil {
		open = todayBar.open
		if price == 0 {
			price = todayBar.close
		}
	}
	if prevClose == 0 || price == 0 {
		return nil, errors.New("yahoo: chart is missing previous close or price for " + symbol)
	}

	info := dto.NewShareInfo(symbol, today, prevClose, open, price,
		fmt.Sprintf(yahooPageURL, symbol), fmt.Sprintf(yahooChartURL, symbol))
	r.log.InfoContext(ctx, "Share info", logger.Field("share_info", info))
	return info, nil
}

func (r *yahooFinanceRepository) bars(result dto.YahooChartResult) []yahooBar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]yahooBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := yahooBar{
			date:  utils.DateIn(time.Unix(ts, 0), r.loc),
			close: *quote.Close[i],
		}
		if i < len(quote.Open) {
			bar.open = quote.Open[i]
		}
		bars = append(bars, bar)
	}
	return bars
}
