package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// Daily price page fallback (HTML)
// =============================================================================

// maxDailyPages 일별 시세 페이지네이션 상한 (페이지당 10 거래일)
const maxDailyPages = 300

var dailyDateRe = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)

// fetchDailyPages fetches daily prices by scraping the sise_day pages
// 차트 API가 실패했을 때의 폴백 경로
func (c *Client) fetchDailyPages(ctx context.Context, symbol string, from, to time.Time) ([]PriceBar, error) {
	var allBars []PriceBar

	for page := 1; page <= maxDailyPages; page++ {
		select {
		case <-ctx.Done():
			return allBars, ctx.Err()
		default:
		}

		url := fmt.Sprintf("%s/item/sise_day.naver?code=%s&page=%d", c.pageBaseURL, symbol, page)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return allBars, fmt.Errorf("create request failed: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
		req.Header.Set("Referer", "https://finance.naver.com/")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return allBars, fmt.Errorf("HTTP request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return allBars, fmt.Errorf("read response body failed: %w", err)
		}

		bars, lastDate := parseDailyHTML(string(body), symbol, from, to)
		allBars = append(allBars, bars...)

		// 기준일보다 이전 데이터면 종료
		if !lastDate.IsZero() && lastDate.Before(from) {
			break
		}

		// 더 이상 데이터 없으면 종료
		if lastDate.IsZero() {
			break
		}
	}

	return allBars, nil
}

// parseDailyHTML parses a sise_day page
// 컬럼: 날짜 | 종가 | 전일비 | 시가 | 고가 | 저가 | 거래량
func parseDailyHTML(html, symbol string, from, to time.Time) ([]PriceBar, time.Time) {
	var bars []PriceBar
	var lastDate time.Time

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return bars, lastDate
	}

	parseNum := func(s string) float64 {
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, ",", "")
		if s == "" || s == "-" {
			return 0
		}
		n, _ := strconv.ParseFloat(s, 64)
		return n
	}

	doc.Find("table.type2 tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 7 {
			return
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		if !dailyDateRe.MatchString(dateText) {
			return
		}

		date, err := time.Parse("2006-01-02", strings.ReplaceAll(dateText, ".", "-"))
		if err != nil {
			return
		}

		lastDate = date

		// 기간 필터
		if date.Before(from) || date.After(to) {
			return
		}

		bars = append(bars, PriceBar{
			Symbol: symbol,
			Date:   date,
			Close:  parseNum(cells.Eq(1).Text()),
			Open:   parseNum(cells.Eq(3).Text()),
			High:   parseNum(cells.Eq(4).Text()),
			Low:    parseNum(cells.Eq(5).Text()),
			Volume: int64(parseNum(cells.Eq(6).Text())),
		})
	})

	return bars, lastDate
}
