package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind 标的类型
type Kind string

const (
	KindFund        Kind = "fund"
	KindChinaIndex  Kind = "china_index"
	KindGlobalIndex Kind = "global_index"
)

// Status 单个标的在一次运行中的获取结果状态
type Status string

const (
	StatusOK           Status = "ok"
	StatusStale        Status = "stale"
	StatusNotAvailable Status = "not_available"
)

// Trend 涨跌趋势，仅由 ChangePct 的符号决定
type Trend string

const (
	TrendUp   Trend = "📈"
	TrendDown Trend = "📉"
	TrendFlat Trend = "➡️"
	TrendNone Trend = "❓"
)

// Item 一个被监控的基金或指数，启动时从配置构建，运行期间不可变
type Item struct {
	Code string
	Name string
	Kind Kind
}

// Alias 短代码到上游数据源符号的映射
type Alias struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Name   string `yaml:"name" json:"name"`
	Market string `yaml:"market" json:"market"`
}

// Quote 一次运行中单个标的的最终结果。
// Status 为 not_available 时 Value/Prior/ChangePct 均为 nil，绝不以 0 代替缺失。
type Quote struct {
	Code      string
	Name      string
	Kind      Kind
	Date      string // 行情日期或净值日期，YYYY-MM-DD
	FetchedAt time.Time
	Value     *float64
	Prior     *float64
	ChangePct *float64
	Source    string
	Status    Status
}

// OK 报告该标的本次是否取到了可用数值
func (q *Quote) OK() bool {
	return q.Status != StatusNotAvailable
}

// Trend 由涨跌幅符号得出趋势，无数据时为 TrendNone
func (q *Quote) Trend() Trend {
	if q.ChangePct == nil {
		return TrendNone
	}
	switch {
	case *q.ChangePct > 0:
		return TrendUp
	case *q.ChangePct < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// ChangePct 计算日涨跌幅百分比：(latest - prior) / prior * 100，保留两位小数。
// 前置条件：prior > 0。昨收未知或为 0 时调用方不得调用本函数，
// 应把涨跌置空并标记 stale；传入 prior == 0 仅返回 0 兜底，不代表平盘。
func ChangePct(latest, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	l := decimal.NewFromFloat(latest)
	p := decimal.NewFromFloat(prior)
	v, _ := l.Sub(p).Div(p).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return v
}

// Float 取指针，便于填充 Quote 的可缺失字段
func Float(v float64) *float64 {
	return &v
}

// AlertRule 告警规则配置，Codes 为空表示作用于全部标的
type AlertRule struct {
	Type      string   `yaml:"type" json:"type"`
	Name      string   `yaml:"name" json:"name"`
	Threshold float64  `yaml:"threshold" json:"threshold"`
	Codes     []string `yaml:"codes" json:"codes"`
	Operator  string   `yaml:"operator" json:"operator"` // below / above，仅 price_threshold 使用
}

// Alert 规则触发后的告警记录
type Alert struct {
	Code     string
	Name     string
	RuleName string
	Observed float64
	Message  string
}

// RunSummary 一次运行的统计结果
type RunSummary struct {
	Total     int
	Succeeded int
	Rising    int
	Falling   int
	Flat      int
	Duration  time.Duration
}

// SuccessRate 成功率百分比，K/N 精确计算，仅显示时四舍五入
func (s *RunSummary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total) * 100
}

// Sentiment 市场情绪：上涨多于下跌为乐观，反之悲观，否则中性
func (s *RunSummary) Sentiment() string {
	switch {
	case s.Rising > s.Falling:
		return "乐观"
	case s.Falling > s.Rising:
		return "悲观"
	default:
		return "中性"
	}
}

// Summarize 汇总一批 Quote
func Summarize(quotes []*Quote, dur time.Duration) *RunSummary {
	s := &RunSummary{Total: len(quotes), Duration: dur}
	for _, q := range quotes {
		if !q.OK() {
			continue
		}
		s.Succeeded++
		switch q.Trend() {
		case TrendUp:
			s.Rising++
		case TrendDown:
			s.Falling++
		case TrendFlat:
			s.Flat++
		}
	}
	return s
}
