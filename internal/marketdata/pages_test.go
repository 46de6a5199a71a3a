package marketdata

import (
	"testing"
	"time"
)

const dailyPageFixture = `
<html><body>
<table class="type2">
<tr><th>날짜</th><th>종가</th><th>전일비</th><th>시가</th><th>고가</th><th>저가</th><th>거래량</th></tr>
<tr>
  <td>2024.01.03</td>
  <td>35,600</td>
  <td>400</td>
  <td>35,200</td>
  <td>35,800</td>
  <td>35,100</td>
  <td>4,800,000</td>
</tr>
<tr>
  <td>2024.01.02</td>
  <td>35,200</td>
  <td>200</td>
  <td>35,000</td>
  <td>35,500</td>
  <td>34,800</td>
  <td>5,000,000</td>
</tr>
<tr><td colspan="7">&nbsp;</td></tr>
</table>
</body></html>`

func TestParseDailyHTML(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	bars, lastDate := parseDailyHTML(dailyPageFixture, "069500", from, to)

	if len(bars) != 2 {
		t.Fatalf("parseDailyHTML() got %d bars, want 2", len(bars))
	}

	// 페이지는 최신순 - 파싱 순서 유지
	first := bars[0]
	if first.Date.Format("2006-01-02") != "2024-01-03" {
		t.Errorf("Date = %s, want 2024-01-03", first.Date.Format("2006-01-02"))
	}
	if first.Close != 35600 || first.Open != 35200 || first.High != 35800 || first.Low != 35100 {
		t.Errorf("OHLC = %v/%v/%v/%v, want 35200/35800/35100/35600 (open/high/low/close)",
			first.Open, first.High, first.Low, first.Close)
	}
	if first.Volume != 4800000 {
		t.Errorf("Volume = %d, want 4800000", first.Volume)
	}

	// lastDate는 페이지 내 가장 마지막으로 파싱된 날짜 (가장 오래된 행)
	if lastDate.Format("2006-01-02") != "2024-01-02" {
		t.Errorf("lastDate = %s, want 2024-01-02", lastDate.Format("2006-01-02"))
	}
}

func TestParseDailyHTML_DateFilter(t *testing.T) {
	// 기간 밖 행은 제외되지만 lastDate에는 반영됨 (페이지네이션 종료 판단)
	from := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	bars, lastDate := parseDailyHTML(dailyPageFixture, "069500", from, to)

	if len(bars) != 1 {
		t.Fatalf("parseDailyHTML() got %d bars, want 1", len(bars))
	}
	if bars[0].Date.Format("2006-01-02") != "2024-01-03" {
		t.Errorf("Date = %s, want 2024-01-03", bars[0].Date.Format("2006-01-02"))
	}
	if !lastDate.Before(from) {
		t.Errorf("lastDate = %v, should be before from for pagination stop", lastDate)
	}
}

func TestParseDailyHTML_Empty(t *testing.T) {
	bars, lastDate := parseDailyHTML("<html><body></body></html>", "069500",
		time.Time{}, time.Now())

	if len(bars) != 0 {
		t.Errorf("parseDailyHTML() got %d bars, want 0", len(bars))
	}
	if !lastDate.IsZero() {
		t.Errorf("lastDate = %v, want zero", lastDate)
	}
}
