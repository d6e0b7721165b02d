package market

import (
	"regexp"
	"strings"

	"github.com/dethan3/tickeye/config"
	"github.com/dethan3/tickeye/model"
)

var (
	chinaPrefixRe = regexp.MustCompile(`^(sh|sz|bj)(\d{6})$`)
	fundCodeRe    = regexp.MustCompile(`^\d{6}$`)
)

// Resolved 解析后的监控项，带上数据源所需的 secid 和市场标识
type Resolved struct {
	model.Item
	Symbol    string // 数据源 secid，如 1.000001 / 100.HSI
	Market    string // sh / sz / bj / hk / us / ... / global
	AliasName string // 别名表中的规范名称
}

// Resolver 把用户代码解析为具体数据源符号。
// 解析失败不报错，条目照常参与本次运行，最终呈现为不可用
type Resolver struct {
	table *config.AliasTable
}

func NewResolver(table *config.AliasTable) *Resolver {
	return &Resolver{table: table}
}

// Resolve 推断标的类型并补全数据源符号。配置中显式指定的类型优先于推断
func (r *Resolver) Resolve(item model.Item) Resolved {
	kind := item.Kind
	if kind == "" {
		kind = r.inferKind(item.Code)
	}
	item.Kind = kind

	switch kind {
	case model.KindChinaIndex:
		return r.resolveChina(item)
	case model.KindFund:
		return Resolved{Item: item, Symbol: item.Code, Market: "fund"}
	default:
		return r.resolveGlobal(item)
	}
}

func (r *Resolver) inferKind(code string) model.Kind {
	if _, ok := r.table.China[code]; ok {
		return model.KindChinaIndex
	}
	if chinaPrefixRe.MatchString(code) {
		return model.KindChinaIndex
	}
	if fundCodeRe.MatchString(code) {
		return model.KindFund
	}
	return model.KindGlobalIndex
}

func (r *Resolver) resolveChina(item model.Item) Resolved {
	if alias, ok := r.table.China[item.Code]; ok {
		return Resolved{Item: item, Symbol: alias.Symbol, Market: alias.Market, AliasName: alias.Name}
	}
	if m := chinaPrefixRe.FindStringSubmatch(item.Code); m != nil {
		// 东方财富 secid：沪市 1.xxxxxx，深市/北交 0.xxxxxx
		prefix, digits := m[1], m[2]
		secid := "0." + digits
		if prefix == "sh" {
			secid = "1." + digits
		}
		return Resolved{Item: item, Symbol: secid, Market: prefix}
	}
	return Resolved{Item: item, Symbol: item.Code, Market: "cn"}
}

func (r *Resolver) resolveGlobal(item model.Item) Resolved {
	key := strings.ToUpper(item.Code)
	if alias, ok := r.table.Global[key]; ok {
		return Resolved{Item: item, Symbol: alias.Symbol, Market: alias.Market, AliasName: alias.Name}
	}
	// 未知代码原样透传，由聚合快照按代码或名称匹配
	return Resolved{Item: item, Symbol: item.Code, Market: "global"}
}

// DisplayName 展示名称优先级：接口返回 > 别名/配置 > 代码
func (it *Resolved) DisplayName(apiName string) string {
	if apiName != "" {
		return apiName
	}
	if it.AliasName != "" {
		return it.AliasName
	}
	if it.Name != "" {
		return it.Name
	}
	return it.Code
}
