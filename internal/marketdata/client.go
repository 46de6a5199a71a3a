package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/quantlab/volguard/pkg/config"
	"github.com/quantlab/volguard/pkg/httputil"
	"github.com/quantlab/volguard/pkg/logger"
	"github.com/quantlab/volguard/pkg/redis"
)

// Client fetches daily price data from Naver Finance
// ⭐ SSOT: 시장 데이터 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient   *httputil.Client
	cache        *redis.Cache
	logger       *logger.Logger
	chartBaseURL string
	pageBaseURL  string
	cacheTTL     time.Duration
}

// NewClient creates a new market data client
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		httpClient:   httpClient,
		cache:        cache,
		logger:       log,
		chartBaseURL: cfg.Market.ChartBaseURL,
		pageBaseURL:  cfg.Market.PageBaseURL,
		cacheTTL:     cfg.Market.CacheTTL,
	}
}

// FetchDailyPrices fetches daily price bars for a symbol
// 차트 API를 우선 사용하고, 비어 있으면 일별 시세 페이지 HTML 파싱으로 폴백.
// 결과는 Redis에 캐시됨 (symbol + 기간 키)
func (c *Client) FetchDailyPrices(ctx context.Context, symbol string, from, to time.Time) ([]PriceBar, error) {
	cacheKey := fmt.Sprintf("prices:%s:%s:%s",
		symbol, from.Format("20060102"), to.Format("20060102"))

	var cached []PriceBar
	if c.cache != nil {
		if found, _ := c.cache.Get(ctx, cacheKey, &cached); found {
			c.logger.WithField("symbol", symbol).Debug("Price cache hit")
			return cached, nil
		}
	}

	bars, err := c.fetchChart(ctx, symbol, from, to)
	if err != nil || len(bars) == 0 {
		if err != nil {
			c.logger.WithError(err).Warn("Chart API failed, falling back to HTML pages")
		}
		bars, err = c.fetchDailyPages(ctx, symbol, from, to)
		if err != nil {
			return nil, err
		}
	}

	// 날짜 오름차순 보장
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	if c.cache != nil && len(bars) > 0 {
		_ = c.cache.Set(ctx, cacheKey, bars, c.cacheTTL)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(bars),
	}).Debug("Fetched daily prices")
	return bars, nil
}

// fetchChart fetches from the Naver Finance chart API
func (c *Client) fetchChart(ctx context.Context, symbol string, from, to time.Time) ([]PriceBar, error) {
	fromStr := from.Format("20060102")
	toStr := to.Format("20060102")

	fullURL := fmt.Sprintf(
		"%s/siseJson.naver?symbol=%s&requestType=1&startTime=%s&endTime=%s&timeframe=day",
		c.chartBaseURL, symbol, fromStr, toStr,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://finance.naver.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return c.parseChartResponse(symbol, string(body))
}

// parseChartResponse parses the chart API response
func (c *Client) parseChartResponse(symbol, body string) ([]PriceBar, error) {
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, "'", "\"")

	// Try JSON parsing first
	var rawData [][]interface{}
	if err := json.Unmarshal([]byte(body), &rawData); err == nil {
		return c.parseChartJSON(symbol, rawData), nil
	}

	// Fallback to regex parsing
	return c.parseChartRegex(symbol, body), nil
}

// parseChartJSON parses JSON array format
func (c *Client) parseChartJSON(symbol string, rawData [][]interface{}) []PriceBar {
	var bars []PriceBar
	for i, row := range rawData {
		if i == 0 || len(row) < 6 {
			continue // Skip header
		}

		dateStr, ok := row[0].(string)
		if !ok {
			continue
		}
		dateStr = strings.Trim(dateStr, "\"")
		if len(dateStr) == 8 {
			dateStr = dateStr[:4] + "-" + dateStr[4:6] + "-" + dateStr[6:8]
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		bars = append(bars, PriceBar{
			Symbol: symbol,
			Date:   date,
			Open:   toFloat(row[1]),
			High:   toFloat(row[2]),
			Low:    toFloat(row[3]),
			Close:  toFloat(row[4]),
			Volume: int64(toFloat(row[5])),
		})
	}
	return bars
}

// parseChartRegex parses using regex (fallback)
func (c *Client) parseChartRegex(symbol, body string) []PriceBar {
	re := regexp.MustCompile(`\["(\d{8})",\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+)\]`)
	matches := re.FindAllStringSubmatch(body, -1)

	var bars []PriceBar
	for _, match := range matches {
		if len(match) < 7 {
			continue
		}

		dateStr := match[1][:4] + "-" + match[1][4:6] + "-" + match[1][6:8]
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		open, _ := strconv.ParseFloat(match[2], 64)
		high, _ := strconv.ParseFloat(match[3], 64)
		low, _ := strconv.ParseFloat(match[4], 64)
		closePrice, _ := strconv.ParseFloat(match[5], 64)
		volume, _ := strconv.ParseInt(match[6], 10, 64)

		bars = append(bars, PriceBar{
			Symbol: symbol,
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}
	return bars
}

// toFloat converts various JSON types to float64
func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	default:
		return 0
	}
}
