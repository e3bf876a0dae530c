package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-stock-bot/internal/bot/dto"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/utils"
)

const googleFinanceDefaultBaseURL = "http://finance.google.com"

type googleFinanceRepository struct {
	baseURL string
	fetcher *httpFetcher
	log     *logger.Logger
	loc     *time.Location
	now     func() time.Time
}

// NewGoogleFinanceRepository creates a backend for a finance/info style ticker quote API.
// Options: base_url, timeout, max_request_per_minute.
func NewGoogleFinanceRepository(opts Options, loc *time.Location, log *logger.Logger) (ShareInfoRepository, error) {
	fetcher, err := newHTTPFetcher("google", opts, 0, log)
	if err != nil {
		return nil, err
	}
	return &googleFinanceRepository{
		baseURL: strings.TrimRight(opts.String("base_url", googleFinanceDefaultBaseURL), "/"),
		fetcher: fetcher,
		log:     log,
		loc:     loc,
		now:     time.Now,
	}, nil
}

func (r *googleFinanceRepository) GetShareInfo(ctx context.Context, symbol string) (*dto.ShareInfo, error) {
	body, err := r.fetcher.get(ctx, r.baseURL+"/finance/info?q="+url.QueryEscape(symbol))
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(string(body))
	content = strings.TrimPrefix(content, "//")

	var quotes []dto.GoogleFinanceQuote
	if err := json.Unmarshal([]byte(content), &quotes); err != nil {
		return nil, fmt.Errorf("google: failed to decode quote for %s: %w", symbol, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("google: no quote for %s", symbol)
	}
	quote := quotes[0]

	// "2015-03-03T16:02:36Z"
	lastTradeDate := quote.LastTradeDateTime
	if len(lastTradeDate) > 10 {
		lastTradeDate = lastTradeDate[:10]
	}
	today := utils.DateIn(r.now(), r.loc)
	if lastTradeDate != today {
		r.log.InfoContext(ctx, "Last trade date is not today",
			logger.StringField("symbol", symbol),
			logger.StringField("last_trade_date", lastTradeDate),
			logger.StringField("today", today))
		return nil, ErrNoFreshData
	}

	prevClose, err := parseGoogleNumber(quote.PreviousClose)
	if err != nil {
		return nil, fmt.Errorf("google: invalid previous close %q: %w", quote.PreviousClose, err)
	}
	price, err := parseGoogleNumber(quote.LastTradePrice)
	if err != nil {
		return nil, fmt.Errorf("google: invalid last trade price %q: %w", quote.LastTradePrice, err)
	}

	info := dto.NewShareInfo(symbol, today, prevClose, nil, price, "", "")
	if quote.Change != "" {
		info.Change = quote.Change
	}
	if quote.ChangePercent != "" {
		// cp has no '+' sign
		sign := ""
		if strings.HasPrefix(quote.Change, "+") {
			sign = "+"
		}
		info.ChangePercent = sign + quote.ChangePercent + "%"
	}

	r.log.InfoContext(ctx, "Share info", logger.Field("share_info", info))
	return info, nil
}

func parseGoogleNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
