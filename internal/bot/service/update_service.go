package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-bot/internal/bot/config"
	"golang-stock-bot/internal/bot/dto"
	"golang-stock-bot/internal/bot/repository"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/retry"
	"golang-stock-bot/pkg/telegram"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrTopicRead means the symbol list could not be read from the chat. It aborts the cycle.
var ErrTopicRead = errors.New("failed to read chat topic")

// UpdateService runs one update cycle: read symbols, fetch quotes, post messages.
type UpdateService interface {
	Run(ctx context.Context) (*CycleResult, error)
}

// CycleResult counts what happened to the symbols of one cycle.
type CycleResult struct {
	Symbols    int `json:"symbols"`
	Posted     int `json:"posted"`
	Failed     int `json:"failed"`
	Stale      int `json:"stale"`
	Invalid    int `json:"invalid"`
	SendErrors int `json:"send_errors"`
}

type outcomeStatus int

const (
	outcomePosted outcomeStatus = iota
	outcomeFailed
	outcomeStale
	outcomeInvalid
)

type symbolOutcome struct {
	status   outcomeStatus
	message  string
	chartURL string
}

type updateService struct {
	repo            repository.ShareInfoRepository
	notifier        telegram.Notifier
	log             *logger.Logger
	policy          retry.Policy
	workers         int
	validateSymbols bool
	sendChart       bool
}

// NewUpdateService creates the update pipeline.
func NewUpdateService(cfg *config.Config, repo repository.ShareInfoRepository, notifier telegram.Notifier, log *logger.Logger) UpdateService {
	workers := cfg.Update.Workers
	if workers < 1 {
		workers = 1
	}
	return &updateService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		policy: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseBackoff: cfg.Retry.BaseBackoff,
			Multiplier:  cfg.Retry.Multiplier,
			MaxBackoff:  cfg.Retry.MaxBackoff,
		},
		workers:         workers,
		validateSymbols: cfg.Update.ValidateSymbols,
		sendChart:       cfg.Telegram.SendChart,
	}
}

// Run executes one cycle. Symbol level failures are reported in the chat and
// never abort the batch; a topic read failure or ctx cancellation does.
func (s *updateService) Run(ctx context.Context) (*CycleResult, error) {
	ctx = logger.WithCycleID(ctx, uuid.NewString())
	start := time.Now()
	s.log.InfoContext(ctx, "Updating")

	topic, err := s.notifier.GetChatTopic()
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to read chat topic", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %w", ErrTopicRead, err)
	}
	s.log.DebugContext(ctx, "Symbols (raw)", logger.StringField("topic", topic))

	symbols := ExtractSymbols(topic)
	s.log.DebugContext(ctx, "Symbols (normalized)", logger.Field("symbols", symbols))

	result := &CycleResult{Symbols: len(symbols)}
	if len(symbols) == 0 {
		s.log.InfoContext(ctx, "No symbols in chat topic, nothing to post")
		return result, nil
	}

	outcomes := make([]symbolOutcome, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			outcome, err := s.processSymbol(gctx, symbol)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for i, outcome := range outcomes {
		switch outcome.status {
		case outcomeStale:
			result.Stale++
			continue
		case outcomeInvalid:
			result.Invalid++
			continue
		case outcomeFailed:
			result.Failed++
		case outcomePosted:
			result.Posted++
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.send(outcome); err != nil {
			result.SendErrors++
			s.log.ErrorContext(ctx, "Failed to send message", logger.ErrorField(err), logger.StringField("symbol", symbols[i]))
		}
	}

	s.log.InfoContext(ctx, "Update finished",
		logger.Field("result", result),
		logger.DurationField("took", time.Since(start)))
	return result, nil
}

func (s *updateService) processSymbol(ctx context.Context, symbol string) (symbolOutcome, error) {
	if err := ctx.Err(); err != nil {
		return symbolOutcome{}, err
	}
	if s.validateSymbols && !ValidSymbol(symbol) {
		s.log.WarnContext(ctx, "Symbol string is bad", logger.StringField("symbol", symbol))
		return symbolOutcome{status: outcomeInvalid}, nil
	}

	policy := s.policy
	policy.Permanent = func(err error) bool {
		return errors.Is(err, repository.ErrNoFreshData)
	}
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		s.log.WarnContext(ctx, "Failed to get share info, retrying",
			logger.ErrorField(err),
			logger.StringField("symbol", symbol),
			logger.IntField("attempt", attempt),
			logger.DurationField("backoff", delay))
	}

	info, err := retry.Do(ctx, policy, func(ctx context.Context) (*dto.ShareInfo, error) {
		return s.repo.GetShareInfo(ctx, symbol)
	})
	switch {
	case err == nil:
		delta := info.DeltaPercent()
		emoji := ClassifyChange(delta)
		s.log.InfoContext(ctx, "Share moved",
			logger.StringField("symbol", symbol),
			logger.StringField("open", info.OpenString()),
			logger.StringField("change", info.Change),
			logger.StringField("change_percent", info.ChangePercent),
			logger.IntField("direction", emoji.direction()))
		outcome := symbolOutcome{
			status:  outcomePosted,
			message: telegram.FormatShareUpdateMessage(string(emoji), symbol, info.PrevClose, info.Price, info.Change, delta),
		}
		if s.sendChart && info.HasChart() {
			outcome.chartURL = info.ChartURL
		}
		return outcome, nil
	case errors.Is(err, repository.ErrNoFreshData):
		s.log.InfoContext(ctx, "No fresh data yet, skipping symbol", logger.StringField("symbol", symbol))
		return symbolOutcome{status: outcomeStale}, nil
	case retry.IsShutdown(ctx, err):
		return symbolOutcome{}, err
	default:
		s.log.ErrorContext(ctx, "Failed to get share info", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return symbolOutcome{
			status:  outcomeFailed,
			message: telegram.FormatShareFailureMessage(symbol),
		}, nil
	}
}

func (s *updateService) send(outcome symbolOutcome) error {
	if outcome.chartURL != "" {
		return s.notifier.SendPhoto(outcome.message, outcome.chartURL)
	}
	return s.notifier.SendMessage(outcome.message)
}
