package backtest

import (
	"encoding/json"
	"math"
)

// =============================================================================
// JSON encoding (NaN-safe)
// =============================================================================

// nanFloat NaN을 null로 직렬화하는 float64
// 퇴화 검정 통계량(NaN)은 유효한 결과이므로 JSON 경계에서 null로 운반 -
// encoding/json은 NaN을 거부함
type nanFloat float64

func (f nanFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *nanFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nanFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = nanFloat(v)
	return nil
}

// kupiecJSON KupiecResult의 와이어 표현
type kupiecJSON struct {
	LRStat     nanFloat `json:"lr_stat"`
	PValue     nanFloat `json:"p_value"`
	Observed   int      `json:"observed"`
	Expected   float64  `json:"expected"`
	Degenerate bool     `json:"degenerate"`
}

// MarshalJSON encodes NaN statistics as null
func (r KupiecResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(kupiecJSON{
		LRStat:     nanFloat(r.LRStat),
		PValue:     nanFloat(r.PValue),
		Observed:   r.Observed,
		Expected:   r.Expected,
		Degenerate: r.Degenerate,
	})
}

// UnmarshalJSON restores null statistics as NaN
func (r *KupiecResult) UnmarshalJSON(data []byte) error {
	var wire kupiecJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.LRStat = float64(wire.LRStat)
	r.PValue = float64(wire.PValue)
	r.Observed = wire.Observed
	r.Expected = wire.Expected
	r.Degenerate = wire.Degenerate
	return nil
}

// christoffersenJSON ChristoffersenResult의 와이어 표현
type christoffersenJSON struct {
	LRStat nanFloat `json:"lr_stat"`
	PValue nanFloat `json:"p_value"`
	N00    int      `json:"n00"`
	N01    int      `json:"n01"`
	N10    int      `json:"n10"`
	N11    int      `json:"n11"`
}

// MarshalJSON encodes NaN statistics as null
func (r ChristoffersenResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(christoffersenJSON{
		LRStat: nanFloat(r.LRStat),
		PValue: nanFloat(r.PValue),
		N00:    r.N00,
		N01:    r.N01,
		N10:    r.N10,
		N11:    r.N11,
	})
}

// UnmarshalJSON restores null statistics as NaN
func (r *ChristoffersenResult) UnmarshalJSON(data []byte) error {
	var wire christoffersenJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.LRStat = float64(wire.LRStat)
	r.PValue = float64(wire.PValue)
	r.N00 = wire.N00
	r.N01 = wire.N01
	r.N10 = wire.N10
	r.N11 = wire.N11
	return nil
}
