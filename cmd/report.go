package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dethan3/tickeye/config"
	"github.com/dethan3/tickeye/history"
	"github.com/dethan3/tickeye/log"
	"github.com/dethan3/tickeye/market"
	"github.com/dethan3/tickeye/model"
	"github.com/dethan3/tickeye/notify"
	"github.com/dethan3/tickeye/report"
	"github.com/dethan3/tickeye/rules"
)

// Report 执行一次完整的监控运行：
// 加载配置 -> 解析 -> 逐项抓取 -> 规则检查 -> 控制台报告 -> 可选推送与落库。
// 只有配置加载失败会返回错误，单项失败和推送失败都不会
func Report(days int, cfgPath, aliasPath, dbPath string, sendTable bool) error {
	start := time.Now()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	table, err := config.LoadAlias(aliasPath)
	if err != nil {
		return err
	}

	items := cfg.Items()
	resolver := market.NewResolver(table)
	fetcher := market.NewFetcher(market.NewClient(), days)

	fmt.Printf("🚀 开始监控 %d 个标的（净值天数: %d）\n", len(items), days)

	ctx := context.Background()
	quotes := make([]*model.Quote, 0, len(items))
	for _, item := range items {
		resolved := resolver.Resolve(item)
		quotes = append(quotes, fetcher.Fetch(ctx, resolved))
	}

	summary := model.Summarize(quotes, time.Since(start))
	alerts := rules.NewEngine(cfg.Rules).Check(quotes)

	report.Print(quotes, alerts, summary)

	if notifier := notify.NewFeishu(cfg.Notify); notifier != nil {
		if err := notifier.SendCard(quotes, alerts, summary); err != nil {
			log.Error("飞书推送失败", zap.Error(err))
		} else {
			fmt.Println("✅ 飞书通知已发送")
		}
		if sendTable {
			if err := notifier.SendTable(quotes); err != nil {
				log.Error("飞书表格推送失败", zap.Error(err))
			}
		}
	}

	if dbPath != "" {
		if err := recordRun(dbPath, quotes, fetcher.Attempts()); err != nil {
			log.Warn("历史记录写入失败", zap.String("db", dbPath), zap.Error(err))
		}
	}

	return nil
}

// recordRun 把本次运行的结果和数据源尝试记录追加到 DuckDB
func recordRun(dbPath string, quotes []*model.Quote, attempts []*model.SourceAttempt) error {
	rec, err := history.NewRecorder(model.DBConfig{Type: model.DBTypeDuckDB, DSN: dbPath})
	if err != nil {
		return err
	}
	if err := rec.Connect(); err != nil {
		return err
	}
	defer rec.Close()

	if err := rec.InitSchema(); err != nil {
		return err
	}

	records := make([]*model.QuoteRecord, 0, len(quotes))
	for _, q := range quotes {
		records = append(records, model.RecordOf(q))
	}
	if err := rec.SaveQuotes(records); err != nil {
		return err
	}
	return rec.SaveAttempts(attempts)
}
