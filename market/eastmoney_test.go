package market

import (
	"context"
	"testing"

	"github.com/h2non/gock"
)

func TestParseSpotDiffArray(t *testing.T) {
	body := []byte(`{"data":{"diff":[
		{"f12":"000001","f14":"上证指数","f2":3342.94,"f3":0.29,"f18":3333.42},
		{"f12":"399001","f14":"深证成指","f2":10591.48,"f3":-0.25,"f18":10618.03}
	]}}`)

	quotes := parseSpotDiff(body)
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	if quotes[0].Code != "000001" || quotes[0].Price != 3342.94 {
		t.Errorf("unexpected first quote: %+v", quotes[0])
	}
	if !quotes[0].HasPct || quotes[0].ChangePct != 0.29 {
		t.Errorf("change pct = %v", quotes[0].ChangePct)
	}
	if quotes[1].PrevClose != 10618.03 {
		t.Errorf("prev close = %v", quotes[1].PrevClose)
	}
}

func TestParseSpotDiffObjectForm(t *testing.T) {
	// diff 偶尔是 {"0":...} 形式而不是数组
	body := []byte(`{"data":{"diff":{
		"0":{"f12":"HSI","f14":"恒生指数","f2":17651.02,"f3":1.12,"f18":17455.51}
	}}}`)

	quotes := parseSpotDiff(body)
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want 1", len(quotes))
	}
	if quotes[0].Code != "HSI" {
		t.Errorf("code = %s", quotes[0].Code)
	}
}

func TestParseSpotDiffPctQuirk(t *testing.T) {
	// f3 为百分比×100 的形态：-25 实际是 -0.25%
	body := []byte(`{"data":{"diff":[
		{"f12":"000001","f14":"上证指数","f2":3342.94,"f3":-25}
	]}}`)

	quotes := parseSpotDiff(body)
	if len(quotes) != 1 {
		t.Fatal("no quotes")
	}
	if quotes[0].ChangePct != -0.25 {
		t.Errorf("change pct = %v, want -0.25", quotes[0].ChangePct)
	}
}

func TestParseSpotDiffSkipsClosed(t *testing.T) {
	// 停盘时 f2 为 "-"，解析为 0，应跳过
	body := []byte(`{"data":{"diff":[
		{"f12":"N225","f14":"日经225","f2":"-","f3":"-"}
	]}}`)

	if quotes := parseSpotDiff(body); len(quotes) != 0 {
		t.Errorf("closed market quote should be skipped, got %+v", quotes)
	}
}

func TestKlineCloses(t *testing.T) {
	defer gock.Off()
	gock.New("https://push2his.eastmoney.com").
		Get("/api/qt/stock/kline/get").
		Reply(200).
		JSON(`{"data":{"klines":[
			"2026-08-27,3330.10,3333.42",
			"2026-08-28,3335.00,3342.94"
		]}}`)

	client := NewClient()
	gock.InterceptClient(client.http)

	klines, err := client.KlineCloses(context.Background(), "1.000001", 2)
	if err != nil {
		t.Fatalf("KlineCloses: %v", err)
	}
	if len(klines) != 2 {
		t.Fatalf("got %d klines, want 2", len(klines))
	}
	if klines[1].Date != "2026-08-28" || klines[1].Close != 3342.94 {
		t.Errorf("latest kline = %+v", klines[1])
	}
}

func TestFundNav(t *testing.T) {
	defer gock.Off()
	gock.New("https://api.fund.eastmoney.com").
		Get("/f10/lsjz").
		Reply(200).
		JSON(`{"Data":{"LSJZList":[
			{"FSRQ":"2026-08-28","DWJZ":"1.2171","JZZZL":"1.01"},
			{"FSRQ":"2026-08-27","DWJZ":"1.2049","JZZZL":"-0.30"}
		]}}`)

	client := NewClient()
	gock.InterceptClient(client.http)

	navs, err := client.FundNav(context.Background(), "008888", 2)
	if err != nil {
		t.Fatalf("FundNav: %v", err)
	}
	if len(navs) != 2 {
		t.Fatalf("got %d navs, want 2", len(navs))
	}
	if navs[0].Value != 1.2171 || navs[0].Date != "2026-08-28" {
		t.Errorf("latest nav = %+v", navs[0])
	}
	if navs[0].Growth == nil || *navs[0].Growth != 1.01 {
		t.Errorf("growth not parsed: %+v", navs[0].Growth)
	}
}

func TestFundNavFieldDrift(t *testing.T) {
	defer gock.Off()
	// 字段名漂移为小写时仍能解析，增长率缺失时为 nil
	gock.New("https://api.fund.eastmoney.com").
		Get("/f10/lsjz").
		Reply(200).
		JSON(`{"Data":{"LSJZList":[
			{"fsrq":"2026-08-28","dwjz":"2.3456"}
		]}}`)

	client := NewClient()
	gock.InterceptClient(client.http)

	navs, err := client.FundNav(context.Background(), "110022", 1)
	if err != nil {
		t.Fatalf("FundNav: %v", err)
	}
	if navs[0].Value != 2.3456 {
		t.Errorf("value = %v", navs[0].Value)
	}
	if navs[0].Growth != nil {
		t.Errorf("growth should be nil, got %v", *navs[0].Growth)
	}
}
