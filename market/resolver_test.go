package market

import (
	"testing"

	"github.com/dethan3/tickeye/config"
	"github.com/dethan3/tickeye/model"
)

func testAliasTable() *config.AliasTable {
	return &config.AliasTable{
		China: map[string]model.Alias{
			"sh000001": {Symbol: "1.000001", Name: "上证指数", Market: "sh"},
		},
		Global: map[string]model.Alias{
			"HSI": {Symbol: "100.HSI", Name: "恒生指数", Market: "hk"},
			"NDX": {Symbol: "100.NDX", Name: "纳斯达克100", Market: "us"},
		},
	}
}

func TestResolverInference(t *testing.T) {
	r := NewResolver(testAliasTable())

	cases := []struct {
		name     string
		code     string
		kind     model.Kind // 配置中显式指定的类型，空则推断
		wantKind model.Kind
		wantSym  string
	}{
		{"别名表中的A股指数", "sh000001", "", model.KindChinaIndex, "1.000001"},
		{"带前缀的深市指数", "sz399001", "", model.KindChinaIndex, "0.399001"},
		{"带前缀的北交指数", "bj899050", "", model.KindChinaIndex, "0.899050"},
		{"六位数字是基金", "008888", "", model.KindFund, "008888"},
		{"别名表中的全球指数", "HSI", "", model.KindGlobalIndex, "100.HSI"},
		{"小写别名也能命中", "hsi", "", model.KindGlobalIndex, "100.HSI"},
		{"未知代码透传", "FTSEMIB", "", model.KindGlobalIndex, "FTSEMIB"},
		{"显式类型优先", "000001", model.KindChinaIndex, model.KindChinaIndex, "000001"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := r.Resolve(model.Item{Code: c.code, Kind: c.kind})
			if got.Kind != c.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind, c.wantKind)
			}
			if got.Symbol != c.wantSym {
				t.Errorf("symbol = %s, want %s", got.Symbol, c.wantSym)
			}
		})
	}
}

func TestResolveGlobalPassthroughMarket(t *testing.T) {
	r := NewResolver(testAliasTable())
	got := r.Resolve(model.Item{Code: "XYZ"})
	if got.Market != "global" {
		t.Errorf("market = %s, want global", got.Market)
	}
}

func TestDisplayName(t *testing.T) {
	item := Resolved{
		Item:      model.Item{Code: "HSI", Name: "配置名"},
		AliasName: "恒生指数",
	}

	if got := item.DisplayName("接口名"); got != "接口名" {
		t.Errorf("api name should win, got %s", got)
	}
	if got := item.DisplayName(""); got != "恒生指数" {
		t.Errorf("alias name should win over config, got %s", got)
	}

	item.AliasName = ""
	if got := item.DisplayName(""); got != "配置名" {
		t.Errorf("config name fallback, got %s", got)
	}

	item.Name = ""
	if got := item.DisplayName(""); got != "HSI" {
		t.Errorf("code fallback, got %s", got)
	}
}
