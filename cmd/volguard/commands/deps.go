package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/quantlab/volguard/internal/marketdata"
	"github.com/quantlab/volguard/internal/risk"
	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/httputil"
	"github.com/quantlab/volguard/pkg/logger"
	"github.com/quantlab/volguard/pkg/redis"
)

// buildMarketClient wires the market data client with rate limiting and cache
// 반환된 close 함수는 Redis 연결 정리를 담당
func buildMarketClient(cfg *config.Config, log *logger.Logger) (*marketdata.Client, func(), error) {
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(redisClient, "volguard")

	httpClient := httputil.New(log).
		WithTimeout(20 * time.Second).
		WithRateLimit(cfg.Market.RatePerSec)

	market := marketdata.NewClient(cfg, httpClient, cache, log)
	return market, func() { _ = redisClient.Close() }, nil
}

// loadReturns fetches (or loads from CSV) price bars and computes log returns
func loadReturns(
	ctx context.Context,
	cfg *config.Config,
	market *marketdata.Client,
	symbol string,
	from, to time.Time,
	fromCSV bool,
) (risk.Series, error) {
	var bars []marketdata.PriceBar
	var err error

	if fromCSV {
		bars, err = marketdata.LoadCSV(cfg.Market.DataDir, symbol)
	} else {
		bars, err = market.FetchDailyPrices(ctx, symbol, from, to)
	}
	if err != nil {
		return risk.Series{}, fmt.Errorf("load prices for %s: %w", symbol, err)
	}
	if len(bars) < 2 {
		return risk.Series{}, fmt.Errorf("not enough price data for %s: %d bars", symbol, len(bars))
	}

	closes, err := marketdata.CloseSeries(bars)
	if err != nil {
		return risk.Series{}, fmt.Errorf("invalid price series for %s: %w", symbol, err)
	}

	return marketdata.LogReturns(closes), nil
}
