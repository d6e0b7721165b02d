// Package notify 飞书 webhook 推送。推送失败只记日志，从不中断运行
package notify

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/dethan3/tickeye/config"
	"github.com/dethan3/tickeye/model"
	"github.com/dethan3/tickeye/report"
)

type Feishu struct {
	webhookURL string
	client     *http.Client
}

// NewFeishu 未启用或缺少 webhook 地址时返回 nil
func NewFeishu(cfg config.NotifyConfig) *Feishu {
	if !cfg.Enabled || cfg.WebhookURL == "" {
		return nil
	}
	return &Feishu{
		webhookURL: cfg.WebhookURL,
		client:     &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
}

type feishuResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// send 只尝试一次，成功标准：HTTP 200 且响应体 code 为 0
func (f *Feishu) send(payload interface{}) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := f.client.Post(f.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d", resp.StatusCode)
	}

	var result feishuResp
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("feishu code %d: %s", result.Code, result.Msg)
	}
	return nil
}

// SendText 纯文本消息
func (f *Feishu) SendText(text string) error {
	return f.send(map[string]interface{}{
		"msg_type": "text",
		"content":  map[string]string{"text": text},
	})
}

// changeMarkdown 涨红跌绿的 lark_md 涨跌文本
func changeMarkdown(q *model.Quote) string {
	if q.ChangePct == nil {
		return "**涨跌**: -"
	}
	change := *q.ChangePct
	switch {
	case change > 0:
		return fmt.Sprintf("<font color='red'>**涨跌**: 📈 +%.2f%%</font>", change)
	case change < 0:
		return fmt.Sprintf("<font color='green'>**涨跌**: 📉 %.2f%%</font>", change)
	default:
		return fmt.Sprintf("**涨跌**: ➖ %.2f%%", change)
	}
}

// SendCard 市场概览交互式卡片，触发的告警附在卡片末尾
func (f *Feishu) SendCard(quotes []*model.Quote, alerts []model.Alert, summary *model.RunSummary) error {
	elements := []interface{}{
		map[string]interface{}{
			"tag": "div",
			"text": map[string]string{
				"tag":     "lark_md",
				"content": fmt.Sprintf("**更新时间**: %s", time.Now().Format("2006-01-02 15:04:05")),
			},
		},
		map[string]interface{}{"tag": "hr"},
	}

	for _, q := range quotes {
		valueText := "**当前值**: -"
		if q.Value != nil {
			valueText = fmt.Sprintf("**当前值**: %s", report.FormatValue(q))
		}
		elements = append(elements, map[string]interface{}{
			"tag": "div",
			"fields": []interface{}{
				map[string]interface{}{
					"is_short": true,
					"text": map[string]string{
						"tag":     "lark_md",
						"content": fmt.Sprintf("**%s**\n%s", q.Code, q.Name),
					},
				},
				map[string]interface{}{
					"is_short": true,
					"text": map[string]string{
						"tag":     "lark_md",
						"content": fmt.Sprintf("%s\n%s", valueText, changeMarkdown(q)),
					},
				},
			},
		})
	}

	if len(alerts) > 0 {
		elements = append(elements, map[string]interface{}{"tag": "hr"})
		for _, a := range alerts {
			elements = append(elements, map[string]interface{}{
				"tag": "div",
				"text": map[string]string{
					"tag":     "lark_md",
					"content": fmt.Sprintf("🚨 **[%s]** %s", a.RuleName, a.Message),
				},
			})
		}
	}

	elements = append(elements,
		map[string]interface{}{"tag": "hr"},
		map[string]interface{}{
			"tag": "div",
			"text": map[string]string{
				"tag": "lark_md",
				"content": fmt.Sprintf("📊 成功 %d/%d（%.2f%%）  市场情绪: %s",
					summary.Succeeded, summary.Total, summary.SuccessRate(), summary.Sentiment()),
			},
		},
	)

	card := map[string]interface{}{
		"config": map[string]bool{"wide_screen_mode": true},
		"header": map[string]interface{}{
			"title":    map[string]string{"tag": "plain_text", "content": "📊 每日市场概览"},
			"template": "blue",
		},
		"elements": elements,
	}

	return f.send(map[string]interface{}{
		"msg_type": "interactive",
		"card":     card,
	})
}

// SendTable 富文本表格消息，等宽文本模拟表格
func (f *Feishu) SendTable(quotes []*model.Quote) error {
	textSeg := func(text string, styles ...string) map[string]interface{} {
		seg := map[string]interface{}{"tag": "text", "text": text}
		if len(styles) > 0 {
			seg["style"] = styles
		}
		return seg
	}

	content := [][]map[string]interface{}{
		{textSeg("📊 市场概览", "bold")},
		{textSeg(fmt.Sprintf("更新时间: %s", time.Now().Format("2006-01-02 15:04:05")))},
		{textSeg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")},
		{
			textSeg("代码", "bold"), textSeg(" | "),
			textSeg("名称", "bold"), textSeg(" | "),
			textSeg("当前值", "bold"), textSeg(" | "),
			textSeg("涨跌幅", "bold"),
		},
	}

	for _, q := range quotes {
		changeText := "➖ -"
		if q.ChangePct != nil {
			switch {
			case *q.ChangePct > 0:
				changeText = fmt.Sprintf("📈 +%.2f%%", *q.ChangePct)
			case *q.ChangePct < 0:
				changeText = fmt.Sprintf("📉 %.2f%%", *q.ChangePct)
			default:
				changeText = fmt.Sprintf("➖ %.2f%%", *q.ChangePct)
			}
		}

		name := q.Name
		if nameRunes := []rune(name); len(nameRunes) > 10 {
			name = string(nameRunes[:10]) + ".."
		}

		content = append(content, []map[string]interface{}{
			textSeg(fmt.Sprintf("%-10s", q.Code)), textSeg(" │ "),
			textSeg(name), textSeg(" │ "),
			textSeg(report.FormatValue(q)), textSeg(" │ "),
			textSeg(changeText),
		})
	}

	content = append(content,
		[]map[string]interface{}{textSeg("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")},
		[]map[string]interface{}{textSeg("数据来源: TickEye 监控系统", "italic")},
	)

	return f.send(map[string]interface{}{
		"msg_type": "post",
		"content": map[string]interface{}{
			"post": map[string]interface{}{
				"zh_cn": map[string]interface{}{
					"title":   "📊 市场概览",
					"content": content,
				},
			},
		},
	})
}
