package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang-stock-bot/internal/bot/dto"
)

// ErrNoFreshData is returned when the backend has no quote for today yet.
// It is a valid outcome, not a failure.
var ErrNoFreshData = errors.New("no fresh data for today")

// ShareInfoRepository fetches the current session's quote of one symbol.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_share_info_repository.go -source=repository.go ShareInfoRepository
type ShareInfoRepository interface {
	GetShareInfo(ctx context.Context, symbol string) (*dto.ShareInfo, error)
}

// Options are backend specific settings given as "key=value;key=value".
type Options map[string]string

// ParseOptions parses a semicolon delimited list of key=value pairs.
func ParseOptions(raw string) (Options, error) {
	opts := Options{}
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid provider option %q, expected key=value", pair)
		}
		opts[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	return opts, nil
}

func (o Options) String(key, fallback string) string {
	if v, ok := o[key]; ok && v != "" {
		return v
	}
	return fallback
}

func (o Options) Int(key string, fallback int) (int, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("provider option %s: %w", key, err)
	}
	return n, nil
}

func (o Options) Duration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("provider option %s: %w", key, err)
	}
	return d, nil
}
