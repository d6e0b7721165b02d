package market

import (
	"math"
	"testing"
)

func TestSinaSymbol(t *testing.T) {
	cases := []struct {
		market string
		secid  string
		want   string
	}{
		{"sh", "1.000001", "s_sh000001"},
		{"sz", "0.399001", "s_sz399001"},
		// 北交所与深市共用 secid 前缀 0，靠 market 区分，新浪不覆盖北交所
		{"bj", "0.899050", ""},
		{"hk", "100.HSI", ""},
		{"cn", "badsecid", ""},
	}

	for _, c := range cases {
		if got := sinaSymbol(c.market, c.secid); got != c.want {
			t.Errorf("sinaSymbol(%s, %s) = %s, want %s", c.market, c.secid, got, c.want)
		}
	}
}

func TestParseSinaSpot(t *testing.T) {
	body := `var hq_str_s_sh000001="上证指数,3342.94,9.52,0.29,2546194,27268966";`

	q, err := parseSinaSpot(body, "s_sh000001")
	if err != nil {
		t.Fatalf("parseSinaSpot: %v", err)
	}
	if q.Name != "上证指数" {
		t.Errorf("name = %s", q.Name)
	}
	if q.Price != 3342.94 {
		t.Errorf("price = %v", q.Price)
	}
	if !q.HasPct || q.ChangePct != 0.29 {
		t.Errorf("change pct = %v", q.ChangePct)
	}
	// 昨收 = 现价 - 涨跌额
	if math.Abs(q.PrevClose-3333.42) > 1e-9 {
		t.Errorf("prev close = %v, want 3333.42", q.PrevClose)
	}
}

func TestParseSinaSpotBadBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"空响应", ""},
		{"无引号", "var hq_str_s_sh000001=;"},
		{"字段不足", `var hq_str_s_sh000001="上证指数,3342.94";`},
		{"价格非法", `var hq_str_s_sh000001="上证指数,0.00,0,0,0,0";`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := parseSinaSpot(c.body, "s_sh000001"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
