package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dethan3/tickeye/log"
	"github.com/dethan3/tickeye/model"
)

// 环境变量名（可覆盖配置文件）
const (
	EnvWebhookURL    = "FEISHU_WEBHOOK_URL"
	EnvNotifyEnabled = "TICKEYE_NOTIFY_ENABLED"
	EnvLogLevel      = "TICKEYE_LOG_LEVEL"
	EnvLogFile       = "TICKEYE_LOG_FILE"
)

// WatchItem 监控清单中的一项，Kind 可留空由解析器推断
type WatchItem struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	Kind string `yaml:"kind" json:"kind"`
}

// NotifyConfig 飞书推送配置
type NotifyConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	WebhookURL string `yaml:"webhook_url" json:"webhook_url"`
	Timeout    int    `yaml:"timeout" json:"timeout"` // 秒，默认 10
}

// Config 监控清单 + 告警规则 + 推送配置
type Config struct {
	Funds   []WatchItem       `yaml:"funds" json:"funds"`
	Indices []WatchItem       `yaml:"indices" json:"indices"`
	Rules   []model.AlertRule `yaml:"rules" json:"rules"`
	Notify  NotifyConfig      `yaml:"notify" json:"notify"`
}

// Load 读取配置文件，按扩展名选择 YAML 或 JSON 解析，
// 然后应用环境变量覆盖并剔除无效规则
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := sonic.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
		}
	}

	if len(cfg.Funds) == 0 && len(cfg.Indices) == 0 {
		return nil, fmt.Errorf("配置文件 %s 中没有任何监控标的", path)
	}

	cfg.applyEnv()
	cfg.Rules = filterRules(cfg.Rules)

	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = 10
	}

	return &cfg, nil
}

// applyEnv 环境变量优先于配置文件
func (c *Config) applyEnv() {
	if url := os.Getenv(EnvWebhookURL); url != "" {
		c.Notify.WebhookURL = url
		c.Notify.Enabled = true
	}
	if v := os.Getenv(EnvNotifyEnabled); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			c.Notify.Enabled = true
		case "0", "false", "no", "off":
			c.Notify.Enabled = false
		}
	}
}

// filterRules 剔除未知类型的规则，加载期就丢弃
func filterRules(rules []model.AlertRule) []model.AlertRule {
	var kept []model.AlertRule
	for i, r := range rules {
		switch r.Type {
		case "percentage_drop", "price_threshold":
			if r.Name == "" {
				r.Name = fmt.Sprintf("规则_%d", i+1)
			}
			kept = append(kept, r)
		default:
			log.Warn("未知的规则类型，已跳过", zap.String("type", r.Type), zap.String("name", r.Name))
		}
	}
	return kept
}

// Items 把监控清单摊平为 Item 列表，基金在前指数在后
func (c *Config) Items() []model.Item {
	items := make([]model.Item, 0, len(c.Funds)+len(c.Indices))
	for _, w := range c.Funds {
		kind := model.Kind(w.Kind)
		if kind == "" {
			kind = model.KindFund
		}
		items = append(items, model.Item{Code: w.Code, Name: w.Name, Kind: kind})
	}
	for _, w := range c.Indices {
		items = append(items, model.Item{Code: w.Code, Name: w.Name, Kind: model.Kind(w.Kind)})
	}
	return items
}
