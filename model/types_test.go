package model

import (
	"testing"
	"time"
)

func TestChangePct(t *testing.T) {
	cases := []struct {
		name   string
		latest float64
		prior  float64
		want   float64
	}{
		{"净值上涨", 1.2171, 1.2049, 1.01},
		{"净值下跌", 1.2049, 1.2171, -1.00},
		{"持平", 1.2049, 1.2049, 0},
		{"指数上涨", 3342.94, 3333.42, 0.29},
		// prior == 0 属兜底返回，调用方应先保证昨值有效
		{"昨值为零兜底", 1.5, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ChangePct(c.latest, c.prior)
			if got != c.want {
				t.Errorf("ChangePct(%v, %v) = %v, want %v", c.latest, c.prior, got, c.want)
			}
		})
	}
}

func TestQuoteTrend(t *testing.T) {
	up := &Quote{ChangePct: Float(1.2)}
	down := &Quote{ChangePct: Float(-0.5)}
	flat := &Quote{ChangePct: Float(0)}
	none := &Quote{Status: StatusNotAvailable}

	if up.Trend() != TrendUp {
		t.Errorf("expected up trend, got %s", up.Trend())
	}
	if down.Trend() != TrendDown {
		t.Errorf("expected down trend, got %s", down.Trend())
	}
	if flat.Trend() != TrendFlat {
		t.Errorf("expected flat trend, got %s", flat.Trend())
	}
	if none.Trend() != TrendNone {
		t.Errorf("expected none trend, got %s", none.Trend())
	}
}

func TestSummarize(t *testing.T) {
	quotes := []*Quote{
		{Code: "a", Status: StatusOK, Value: Float(1), ChangePct: Float(2.0)},
		{Code: "b", Status: StatusOK, Value: Float(1), ChangePct: Float(-1.0)},
		{Code: "c", Status: StatusOK, Value: Float(1), ChangePct: Float(0)},
		{Code: "d", Status: StatusNotAvailable},
		{Code: "e", Status: StatusOK, Value: Float(1), ChangePct: Float(0.5)},
		{Code: "f", Status: StatusNotAvailable},
	}

	s := Summarize(quotes, 2*time.Second)

	if s.Total != 6 || s.Succeeded != 4 {
		t.Fatalf("total/succeeded = %d/%d, want 6/4", s.Total, s.Succeeded)
	}
	if s.Rising != 2 || s.Falling != 1 || s.Flat != 1 {
		t.Errorf("rising/falling/flat = %d/%d/%d, want 2/1/1", s.Rising, s.Falling, s.Flat)
	}
	// 成功率精确为 K/N
	want := 4.0 / 6.0 * 100
	if s.SuccessRate() != want {
		t.Errorf("success rate = %v, want %v", s.SuccessRate(), want)
	}
	if s.Sentiment() != "乐观" {
		t.Errorf("sentiment = %s, want 乐观", s.Sentiment())
	}
}

func TestSummarizeSentiment(t *testing.T) {
	down := Summarize([]*Quote{
		{Status: StatusOK, ChangePct: Float(-1)},
		{Status: StatusOK, ChangePct: Float(-2)},
		{Status: StatusOK, ChangePct: Float(1)},
	}, 0)
	if down.Sentiment() != "悲观" {
		t.Errorf("sentiment = %s, want 悲观", down.Sentiment())
	}

	neutral := Summarize([]*Quote{
		{Status: StatusOK, ChangePct: Float(-1)},
		{Status: StatusOK, ChangePct: Float(1)},
	}, 0)
	if neutral.Sentiment() != "中性" {
		t.Errorf("sentiment = %s, want 中性", neutral.Sentiment())
	}
}

func TestRecordOf(t *testing.T) {
	q := &Quote{
		Code:      "sh000001",
		Name:      "上证指数",
		Kind:      KindChinaIndex,
		Date:      "2026-08-28",
		Value:     Float(3342.94),
		ChangePct: Float(0.29),
		Source:    "eastmoney_spot",
		Status:    StatusOK,
		FetchedAt: time.Now(),
	}

	r := RecordOf(q)
	if r.Code != q.Code || r.Kind != "china_index" || r.Status != "ok" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Value == nil || *r.Value != 3342.94 {
		t.Errorf("record value not carried over")
	}
	if r.Prior != nil {
		t.Errorf("missing prior should stay nil")
	}
}

func TestSchemaFromStructPointerFields(t *testing.T) {
	cols := TableQuotes.Columns
	byName := make(map[string]DataType, len(cols))
	for _, c := range cols {
		byName[c.Name] = c.Type
	}

	if byName["value"] != TypeFloat64 {
		t.Errorf("value column type = %v, want float", byName["value"])
	}
	if byName["change_pct"] != TypeFloat64 {
		t.Errorf("change_pct column type = %v, want float", byName["change_pct"])
	}
	if byName["fetched_at"] != TypeDateTime {
		t.Errorf("fetched_at column type = %v, want datetime", byName["fetched_at"])
	}
}
