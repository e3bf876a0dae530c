package dto

import (
	"fmt"
	"strconv"

	"golang-stock-bot/pkg/common"
)

// ShareInfo is one symbol's state for the current trading session.
type ShareInfo struct {
	Symbol        string   `json:"symbol"`
	TradeDate     string   `json:"trade_date"`
	PrevClose     float64  `json:"prev_close"`
	Open          *float64 `json:"open,omitempty"`
	Price         float64  `json:"price"`
	Change        string   `json:"change"`
	ChangePercent string   `json:"change_percent"`
	PageURL       string   `json:"page_url"`
	ChartURL      string   `json:"chart_url"`
}

// NewShareInfo derives the change fields from the previous close and the current price.
func NewShareInfo(symbol, tradeDate string, prevClose float64, open *float64, price float64, pageURL, chartURL string) *ShareInfo {
	change := price - prevClose
	changePercent := 0.0
	if prevClose != 0 {
		changePercent = 100.0 * change / prevClose
	}
	return &ShareInfo{
		Symbol:        symbol,
		TradeDate:     tradeDate,
		PrevClose:     prevClose,
		Open:          open,
		Price:         price,
		Change:        fmt.Sprintf("%+.2f", change),
		ChangePercent: fmt.Sprintf("%+.2f%%", changePercent),
		PageURL:       orNotAvailable(pageURL),
		ChartURL:      orNotAvailable(chartURL),
	}
}

// OpenString renders the open price, or N/A when the backend has none.
func (s *ShareInfo) OpenString() string {
	if s.Open == nil {
		return common.NotAvailable
	}
	return strconv.FormatFloat(*s.Open, 'f', 2, 64)
}

// DeltaPercent is the day-over-day move in percent.
func (s *ShareInfo) DeltaPercent() float64 {
	if s.PrevClose == 0 {
		return 0
	}
	return 100.0 * (s.Price/s.PrevClose - 1.0)
}

// HasChart reports whether the backend provided a chart image URL.
func (s *ShareInfo) HasChart() bool {
	return s.ChartURL != "" && s.ChartURL != common.NotAvailable
}

func orNotAvailable(s string) string {
	if s == "" {
		return common.NotAvailable
	}
	return s
}
