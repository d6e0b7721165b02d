package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// 新浪财经简版行情，GBK 编码，备用数据源
const (
	sinaSpotURL = "https://hq.sinajs.cn/list=%s"
	sinaReferer = "https://finance.sina.com.cn"
)

// sinaSymbol 把东方财富 secid 转为新浪简版行情符号：1.000001 -> s_sh000001。
// secid 前缀 0 同时覆盖深市和北交所，需结合 market 区分；
// 新浪简版行情不覆盖北交所指数，返回空串让回退链前进
func sinaSymbol(market, secid string) string {
	parts := strings.SplitN(secid, ".", 2)
	if len(parts) != 2 {
		return ""
	}
	switch parts[0] {
	case "1":
		return "s_sh" + parts[1]
	case "0":
		if market == "sz" {
			return "s_sz" + parts[1]
		}
	}
	return ""
}

// SinaSpot 实时快照。返回格式：
// var hq_str_s_sh000001="上证指数,3342.94,9.52,0.29,2546194,27268966";
// 字段依次为 名称,现价,涨跌额,涨跌幅,成交量,成交额
func (c *Client) SinaSpot(ctx context.Context, symbol string) (*spotQuote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("empty sina symbol")
	}
	url := fmt.Sprintf(sinaSpotURL, symbol)
	body, err := c.GetGBK(ctx, url, map[string]string{"Referer": sinaReferer})
	if err != nil {
		return nil, err
	}
	return parseSinaSpot(string(body), symbol)
}

func parseSinaSpot(body, symbol string) (*spotQuote, error) {
	start := strings.Index(body, `"`)
	end := strings.LastIndex(body, `"`)
	if start < 0 || end <= start {
		return nil, fmt.Errorf("bad sina body for %s", symbol)
	}

	fields := strings.Split(body[start+1:end], ",")
	if len(fields) < 4 {
		return nil, fmt.Errorf("bad sina fields for %s", symbol)
	}

	price, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("bad sina price for %s", symbol)
	}
	changePct, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("bad sina change pct for %s", symbol)
	}

	q := &spotQuote{
		Name:      fields[0],
		Price:     price,
		ChangePct: changePct,
		HasPct:    true,
	}
	// 由涨跌额回推昨收
	if delta, err := strconv.ParseFloat(fields[2], 64); err == nil {
		q.PrevClose = price - delta
	}
	return q, nil
}
