package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// 东方财富接口地址
const (
	eastmoneySpotURL    = "https://push2.eastmoney.com/api/qt/ulist.np/get"
	eastmoneyListURL    = "https://82.push2.eastmoney.com/api/qt/clist/get"
	eastmoneyKlineURL   = "https://push2his.eastmoney.com/api/qt/stock/kline/get"
	eastmoneyFundNavURL = "https://api.fund.eastmoney.com/f10/lsjz"
)

const (
	quoteReferer = "https://quote.eastmoney.com/"
	fundReferer  = "https://fundf10.eastmoney.com/"
)

// 快照字段：f12 代码 f14 名称 f2 现价 f3 涨跌幅 f18 昨收
const spotFields = "f12,f14,f2,f3,f18"

// 指数接口 f3 有时为"百分比×100"，如 -0.25% 返回 -25，绝对值>20 时除以 100
func normalizeChangePct(raw float64) float64 {
	if raw > 20 || raw < -20 {
		return raw / 100
	}
	return raw
}

type spotQuote struct {
	Code      string
	Name      string
	Price     float64
	PrevClose float64 // 0 表示接口未给
	ChangePct float64
	HasPct    bool
}

type klinePoint struct {
	Date  string
	Close float64
}

type navPoint struct {
	Date   string
	Value  float64
	Growth *float64 // 接口给出的日增长率，解析失败为 nil
}

// SpotBySecIDs 实时快照，secids 逗号分隔
func (c *Client) SpotBySecIDs(ctx context.Context, secids string) ([]spotQuote, error) {
	url := fmt.Sprintf("%s?secids=%s&fields=%s", eastmoneySpotURL, secids, spotFields)
	body, err := c.Get(ctx, url, map[string]string{"Referer": quoteReferer})
	if err != nil {
		return nil, err
	}
	quotes := parseSpotDiff(body)
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no data.diff for %s", secids)
	}
	return quotes, nil
}

// SpotByFilter 列表接口查询，fs 为筛选表达式
func (c *Client) SpotByFilter(ctx context.Context, fs string) ([]spotQuote, error) {
	url := fmt.Sprintf("%s?pn=1&pz=200&po=1&fs=%s&fields=%s", eastmoneyListURL, fs, spotFields)
	body, err := c.Get(ctx, url, map[string]string{"Referer": quoteReferer})
	if err != nil {
		return nil, err
	}
	quotes := parseSpotDiff(body)
	if len(quotes) == 0 {
		return nil, fmt.Errorf("empty list for %s", fs)
	}
	return quotes, nil
}

// GlobalSnapshot 全球指数聚合快照，一次请求覆盖全部指数，整个运行内缓存复用
func (c *Client) GlobalSnapshot(ctx context.Context) ([]spotQuote, error) {
	return c.SpotByFilter(ctx, "m:100")
}

// parseSpotDiff 解析 data.diff，兼容数组和 {"0":...} 两种形态
func parseSpotDiff(body []byte) []spotQuote {
	diff := gjson.GetBytes(body, "data.diff")
	if !diff.Exists() {
		return nil
	}

	var out []spotQuote
	diff.ForEach(func(_, v gjson.Result) bool {
		code := strings.TrimSpace(v.Get("f12").String())
		name := strings.TrimSpace(v.Get("f14").String())
		if code == "" && name == "" {
			return true
		}
		price := v.Get("f2").Float()
		if price <= 0 {
			return true
		}
		q := spotQuote{
			Code:      code,
			Name:      name,
			Price:     price,
			PrevClose: v.Get("f18").Float(),
		}
		if f3 := v.Get("f3"); f3.Exists() && f3.Type == gjson.Number {
			q.ChangePct = normalizeChangePct(f3.Float())
			q.HasPct = true
		}
		out = append(out, q)
		return true
	})
	return out
}

// KlineCloses 日 K 线最近 count 条收盘价
func (c *Client) KlineCloses(ctx context.Context, secid string, count int) ([]klinePoint, error) {
	url := fmt.Sprintf("%s?secid=%s&fields1=f1,f2,f3&fields2=f51,f52,f53&klt=101&fqt=1&lmt=%d",
		eastmoneyKlineURL, secid, count)
	body, err := c.Get(ctx, url, map[string]string{"Referer": quoteReferer})
	if err != nil {
		return nil, err
	}

	klines := gjson.GetBytes(body, "data.klines")
	if !klines.Exists() || !klines.IsArray() {
		return nil, fmt.Errorf("no data.klines for %s", secid)
	}

	var out []klinePoint
	for _, v := range klines.Array() {
		parts := strings.Split(strings.TrimSpace(v.String()), ",")
		if len(parts) < 3 {
			continue
		}
		closeVal, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			continue
		}
		out = append(out, klinePoint{Date: parts[0], Close: closeVal})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no klines for %s", secid)
	}
	return out, nil
}

// 净值字段候选名，接口字段名偶有漂移，按优先级逐个尝试
var (
	navDateFields   = []string{"FSRQ", "fsrq", "date"}
	navValueFields  = []string{"DWJZ", "dwjz", "nav"}
	navGrowthFields = []string{"JZZZL", "jzzzl", "growth"}
)

func pickField(item gjson.Result, candidates []string) gjson.Result {
	for _, name := range candidates {
		if v := item.Get(name); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// FundNav 历史净值序列，最新在前。count 通常为 days+1，用相邻两条计算涨跌
func (c *Client) FundNav(ctx context.Context, code string, count int) ([]navPoint, error) {
	url := fmt.Sprintf("%s?fundCode=%s&pageIndex=1&pageSize=%d", eastmoneyFundNavURL, code, count)
	body, err := c.Get(ctx, url, map[string]string{"Referer": fundReferer})
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(body, "Data.LSJZList")
	if !list.Exists() || !list.IsArray() {
		return nil, fmt.Errorf("no nav list for fund %s", code)
	}

	var out []navPoint
	for _, item := range list.Array() {
		dateV := pickField(item, navDateFields)
		valueV := pickField(item, navValueFields)
		if !dateV.Exists() || !valueV.Exists() {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueV.String()), 64)
		if err != nil || value <= 0 {
			continue
		}
		p := navPoint{Date: dateV.String(), Value: value}
		if growthV := pickField(item, navGrowthFields); growthV.Exists() {
			if g, err := strconv.ParseFloat(strings.TrimSpace(growthV.String()), 64); err == nil {
				p.Growth = &g
			}
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no nav records for fund %s", code)
	}
	return out, nil
}
