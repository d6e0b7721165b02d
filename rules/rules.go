// Package rules 告警规则评估，无状态：每条规则只看本次运行的 Quote 快照
package rules

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dethan3/tickeye/log"
	"github.com/dethan3/tickeye/model"
)

type Engine struct {
	rules []model.AlertRule
}

func NewEngine(rules []model.AlertRule) *Engine {
	return &Engine{rules: rules}
}

// Check 对全部 Quote 执行全部规则，返回触发的告警。
// 没有数值的条目直接跳过
func (e *Engine) Check(quotes []*model.Quote) []model.Alert {
	var alerts []model.Alert
	for _, rule := range e.rules {
		triggered := e.checkRule(rule, quotes)
		alerts = append(alerts, triggered...)
	}
	if len(e.rules) > 0 {
		log.Info("规则检查完成",
			zap.Int("rules", len(e.rules)), zap.Int("alerts", len(alerts)))
	}
	return alerts
}

func (e *Engine) checkRule(rule model.AlertRule, quotes []*model.Quote) []model.Alert {
	var alerts []model.Alert
	for _, q := range quotes {
		if !inScope(rule, q.Code) || q.Value == nil {
			continue
		}
		switch rule.Type {
		case "percentage_drop":
			if q.ChangePct == nil {
				continue
			}
			if *q.ChangePct <= -rule.Threshold {
				alerts = append(alerts, model.Alert{
					Code:     q.Code,
					Name:     q.Name,
					RuleName: rule.Name,
					Observed: *q.ChangePct,
					Message: fmt.Sprintf("%s(%s) 跌幅 %.2f%%，超过阈值 %.2f%%",
						q.Name, q.Code, -*q.ChangePct, rule.Threshold),
				})
			}
		case "price_threshold":
			if triggered, msg := checkPrice(rule, q); triggered {
				alerts = append(alerts, model.Alert{
					Code:     q.Code,
					Name:     q.Name,
					RuleName: rule.Name,
					Observed: *q.Value,
					Message:  msg,
				})
			}
		}
	}
	return alerts
}

func checkPrice(rule model.AlertRule, q *model.Quote) (bool, string) {
	value := *q.Value
	switch rule.Operator {
	case "above":
		if value > rule.Threshold {
			return true, fmt.Sprintf("%s(%s) 当前值 %.4f，高于阈值 %.4f",
				q.Name, q.Code, value, rule.Threshold)
		}
	default: // below
		if value < rule.Threshold {
			return true, fmt.Sprintf("%s(%s) 当前值 %.4f，低于阈值 %.4f",
				q.Name, q.Code, value, rule.Threshold)
		}
	}
	return false, ""
}

// inScope Codes 为空表示规则作用于全部标的
func inScope(rule model.AlertRule, code string) bool {
	if len(rule.Codes) == 0 {
		return true
	}
	for _, c := range rule.Codes {
		if c == code {
			return true
		}
	}
	return false
}
