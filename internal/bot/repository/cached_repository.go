package repository

import (
	"context"
	"time"

	"golang-stock-bot/internal/bot/dto"
	"golang-stock-bot/pkg/logger"
	"golang-stock-bot/pkg/utils"

	"github.com/patrickmn/go-cache"
)

type cachedShareInfoRepository struct {
	next  ShareInfoRepository
	cache *cache.Cache
	log   *logger.Logger
	loc   *time.Location
	now   func() time.Time
}

// NewCachedShareInfoRepository keeps successful quotes in memory for ttl so a
// symbol listed twice in the topic is fetched once. A ttl of zero disables caching.
func NewCachedShareInfoRepository(next ShareInfoRepository, ttl time.Duration, loc *time.Location, log *logger.Logger) ShareInfoRepository {
	if ttl <= 0 {
		return next
	}
	return &cachedShareInfoRepository{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
		log:   log,
		loc:   loc,
		now:   time.Now,
	}
}

func (r *cachedShareInfoRepository) GetShareInfo(ctx context.Context, symbol string) (*dto.ShareInfo, error) {
	if v, ok := r.cache.Get(symbol); ok {
		info := v.(*dto.ShareInfo)
		if info.TradeDate == utils.DateIn(r.now(), r.loc) {
			r.log.DebugContext(ctx, "Share info served from cache", logger.StringField("symbol", symbol))
			return info, nil
		}
		r.cache.Delete(symbol)
	}

	info, err := r.next.GetShareInfo(ctx, symbol)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(symbol, info)
	return info, nil
}
