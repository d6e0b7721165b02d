package rules

import (
	"testing"

	"github.com/dethan3/tickeye/model"
)

func testQuotes() []*model.Quote {
	return []*model.Quote{
		{Code: "008888", Name: "军工龙头", Value: model.Float(1.2049), ChangePct: model.Float(-3.5), Status: model.StatusOK},
		{Code: "110022", Name: "易方达消费", Value: model.Float(2.3456), ChangePct: model.Float(-1.2), Status: model.StatusOK},
		{Code: "sh000001", Name: "上证指数", Value: model.Float(3342.94), ChangePct: model.Float(0.29), Status: model.StatusOK},
		{Code: "HSI", Name: "恒生指数", Status: model.StatusNotAvailable},
	}
}

func TestPercentageDropScoped(t *testing.T) {
	engine := NewEngine([]model.AlertRule{
		{Type: "percentage_drop", Name: "大跌提醒", Threshold: 3.0, Codes: []string{"008888"}},
	})

	alerts := engine.Check(testQuotes())
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Code != "008888" || alerts[0].Observed != -3.5 {
		t.Errorf("alert = %+v", alerts[0])
	}
}

func TestPercentageDropAllScope(t *testing.T) {
	// Codes 为空作用于全部标的，但 -1.2% 未过 3% 阈值
	engine := NewEngine([]model.AlertRule{
		{Type: "percentage_drop", Name: "大跌提醒", Threshold: 3.0},
	})

	alerts := engine.Check(testQuotes())
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}

	// 降低阈值后两只下跌的基金都触发
	engine = NewEngine([]model.AlertRule{
		{Type: "percentage_drop", Name: "任何下跌", Threshold: 1.0},
	})
	alerts = engine.Check(testQuotes())
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
}

func TestPriceThreshold(t *testing.T) {
	cases := []struct {
		name      string
		rule      model.AlertRule
		wantCount int
	}{
		{
			"低于阈值触发",
			model.AlertRule{Type: "price_threshold", Name: "净值过低", Threshold: 1.25, Codes: []string{"008888"}},
			1,
		},
		{
			"未低于阈值不触发",
			model.AlertRule{Type: "price_threshold", Name: "净值过低", Threshold: 1.0, Codes: []string{"008888"}},
			0,
		},
		{
			"高于阈值触发",
			model.AlertRule{Type: "price_threshold", Name: "指数过高", Threshold: 3000, Operator: "above", Codes: []string{"sh000001"}},
			1,
		},
		{
			// 阈值比较是严格小于，恰好等于不触发
			"等于阈值不触发 below",
			model.AlertRule{Type: "price_threshold", Name: "净值过低", Threshold: 1.2049, Codes: []string{"008888"}},
			0,
		},
		{
			"等于阈值不触发 above",
			model.AlertRule{Type: "price_threshold", Name: "指数过高", Threshold: 3342.94, Operator: "above", Codes: []string{"sh000001"}},
			0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			alerts := NewEngine([]model.AlertRule{c.rule}).Check(testQuotes())
			if len(alerts) != c.wantCount {
				t.Errorf("got %d alerts, want %d", len(alerts), c.wantCount)
			}
		})
	}
}

func TestRulesSkipQuotesWithoutValue(t *testing.T) {
	// 不可用的条目没有数值，任何规则都应跳过它
	engine := NewEngine([]model.AlertRule{
		{Type: "percentage_drop", Name: "全体下跌", Threshold: 0.1},
		{Type: "price_threshold", Name: "全体低于", Threshold: 99999},
	})

	alerts := engine.Check(testQuotes())
	for _, a := range alerts {
		if a.Code == "HSI" {
			t.Errorf("not_available quote must not trigger alerts: %+v", a)
		}
	}
}

func TestNoRules(t *testing.T) {
	if alerts := NewEngine(nil).Check(testQuotes()); len(alerts) != 0 {
		t.Errorf("got %d alerts from empty engine", len(alerts))
	}
}
