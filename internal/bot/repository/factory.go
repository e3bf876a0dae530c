package repository

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-bot/internal/bot/config"
	"golang-stock-bot/pkg/logger"
)

const (
	ProviderYahoo        = "yahoo"
	ProviderAlphaVantage = "alphavantage"
	ProviderGoogle       = "google"
)

type constructor func(opts Options, loc *time.Location, log *logger.Logger) (ShareInfoRepository, error)

var constructors = map[string]constructor{
	ProviderYahoo:        NewYahooFinanceRepository,
	ProviderAlphaVantage: NewAlphaVantageRepository,
	ProviderGoogle:       NewGoogleFinanceRepository,
}

// NewFromConfig builds the configured market-data backend wrapped in the quote cache.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (ShareInfoRepository, error) {
	name := strings.TrimSpace(strings.ToLower(cfg.Provider.Name))
	if name == "" {
		name = ProviderYahoo
	}

	newRepo, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q, expected one of %s, %s, %s", cfg.Provider.Name, ProviderYahoo, ProviderAlphaVantage, ProviderGoogle)
	}

	opts, err := ParseOptions(cfg.Provider.Options)
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	repo, err := newRepo(opts, loc, log)
	if err != nil {
		return nil, err
	}

	log.Info("Market data provider selected", logger.StringField("provider", name))
	return NewCachedShareInfoRepository(repo, cfg.Provider.CacheTTL, loc, log), nil
}
