// Package report 控制台报告渲染
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dethan3/tickeye/model"
)

// FormatValue 指数保留两位小数，基金净值保留四位
func FormatValue(q *model.Quote) string {
	if q.Value == nil {
		return "-"
	}
	if q.Kind == model.KindFund {
		return fmt.Sprintf("%.4f", *q.Value)
	}
	return fmt.Sprintf("%.2f", *q.Value)
}

// FormatChange 带符号的涨跌幅
func FormatChange(q *model.Quote) string {
	if q.ChangePct == nil {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", *q.ChangePct)
}

func statusText(q *model.Quote) string {
	switch q.Status {
	case model.StatusOK:
		return "正常"
	case model.StatusStale:
		return "仅现值"
	default:
		return "不可用"
	}
}

// Print 渲染单项明细、告警与汇总。失败的条目照常出现在报告里
func Print(quotes []*model.Quote, alerts []model.Alert, summary *model.RunSummary) {
	fmt.Println()
	fmt.Println("====== 行情监控报告 ======")
	fmt.Println()

	for _, q := range quotes {
		if !q.OK() {
			fmt.Printf("  %s %s (%s)  不可用\n", q.Trend(), q.Name, q.Code)
			continue
		}
		fmt.Printf("  %s %s (%s)  %s  %s  [%s] %s %s\n",
			q.Trend(), q.Name, q.Code,
			FormatValue(q), FormatChange(q),
			q.Source, q.Date, statusText(q))
	}

	if len(alerts) > 0 {
		fmt.Println()
		fmt.Println("🚨 触发告警:")
		for _, a := range alerts {
			fmt.Printf("  ⚠️ [%s] %s\n", a.RuleName, a.Message)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("📊 共监控 %d 项，成功 %d 项，成功率 %.2f%%\n",
		summary.Total, summary.Succeeded, summary.SuccessRate())
	fmt.Printf("📈 上涨 %d   📉 下跌 %d   ➡️ 平盘 %d   市场情绪: %s\n",
		summary.Rising, summary.Falling, summary.Flat, summary.Sentiment())
	fmt.Printf("⏱️ 耗时: %s\n", summary.Duration.Round(10*time.Millisecond))
	fmt.Println()
}
