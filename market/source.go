package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dethan3/tickeye/log"
	"github.com/dethan3/tickeye/model"
)

// Source 单个数据源的统一契约。
// 返回错误表示该源失败，回退链前进；永远不会让错误冒泡给调用方
type Source interface {
	Name() string
	Fetch(ctx context.Context, item Resolved) (*model.Quote, error)
}

// Fetcher 按标的类型走各自的回退链，并记录每次数据源尝试
type Fetcher struct {
	chains   map[model.Kind][]Source
	attempts []*model.SourceAttempt
}

// NewFetcher days 决定基金净值请求的条数（days+1）
func NewFetcher(client *Client, days int) *Fetcher {
	return &Fetcher{
		chains: map[model.Kind][]Source{
			model.KindChinaIndex: {
				&eastmoneySpotSource{client: client},
				&sinaSpotSource{client: client},
				&eastmoneyKlineSource{client: client},
			},
			model.KindGlobalIndex: {
				&globalMarketSource{client: client},
				&globalSnapshotSource{client: client},
			},
			model.KindFund: {
				&fundNavSource{client: client, days: days},
			},
		},
	}
}

// Fetch 依次尝试回退链上的数据源，全部失败时返回不可用的 Quote，
// 单个标的的失败从不中断整个运行
func (f *Fetcher) Fetch(ctx context.Context, item Resolved) *model.Quote {
	now := time.Now()

	for i, src := range f.chains[item.Kind] {
		q, err := src.Fetch(ctx, item)
		if err != nil {
			log.Warn("数据源获取失败，尝试下一个",
				zap.String("code", item.Code),
				zap.String("source", src.Name()),
				zap.Error(err))
			f.record(item.Code, src.Name(), i, "fail", err.Error(), now)
			continue
		}
		f.record(item.Code, src.Name(), i, "ok", "", now)
		q.FetchedAt = now
		return q
	}

	return &model.Quote{
		Code:      item.Code,
		Name:      item.DisplayName(""),
		Kind:      item.Kind,
		FetchedAt: now,
		Status:    model.StatusNotAvailable,
	}
}

func (f *Fetcher) record(code, source string, seq int, outcome, detail string, at time.Time) {
	f.attempts = append(f.attempts, &model.SourceAttempt{
		Code:      code,
		Source:    source,
		Seq:       seq,
		Outcome:   outcome,
		Detail:    detail,
		FetchedAt: at,
	})
}

// Attempts 本次运行的全部数据源尝试记录
func (f *Fetcher) Attempts() []*model.SourceAttempt {
	return f.attempts
}

// quoteFromSpot 由实时快照构建 Quote。
// 有值但无法确定涨跌时状态为 stale 而不是丢弃
func quoteFromSpot(item Resolved, sq *spotQuote, source string) *model.Quote {
	q := &model.Quote{
		Code:   item.Code,
		Name:   item.DisplayName(sq.Name),
		Kind:   item.Kind,
		Date:   time.Now().Format("2006-01-02"),
		Value:  model.Float(sq.Price),
		Source: source,
		Status: model.StatusOK,
	}
	if sq.PrevClose > 0 {
		q.Prior = model.Float(sq.PrevClose)
	}
	switch {
	case sq.HasPct:
		q.ChangePct = model.Float(sq.ChangePct)
	case sq.PrevClose > 0:
		q.ChangePct = model.Float(model.ChangePct(sq.Price, sq.PrevClose))
	default:
		q.Status = model.StatusStale
	}
	return q
}

// --- A 股指数回退链 ---

type eastmoneySpotSource struct {
	client *Client
}

func (s *eastmoneySpotSource) Name() string { return "eastmoney_spot" }

func (s *eastmoneySpotSource) Fetch(ctx context.Context, item Resolved) (*model.Quote, error) {
	quotes, err := s.client.SpotBySecIDs(ctx, item.Symbol)
	if err != nil {
		return nil, err
	}
	return quoteFromSpot(item, &quotes[0], s.Name()), nil
}

type sinaSpotSource struct {
	client *Client
}

func (s *sinaSpotSource) Name() string { return "sina_spot" }

func (s *sinaSpotSource) Fetch(ctx context.Context, item Resolved) (*model.Quote, error) {
	sq, err := s.client.SinaSpot(ctx, sinaSymbol(item.Market, item.Symbol))
	if err != nil {
		return nil, err
	}
	return quoteFromSpot(item, sq, s.Name()), nil
}

type eastmoneyKlineSource struct {
	client *Client
}

func (s *eastmoneyKlineSource) Name() string { return "eastmoney_kline" }

// Fetch 取最近两根日 K 的收盘价推算涨跌
func (s *eastmoneyKlineSource) Fetch(ctx context.Context, item Resolved) (*model.Quote, error) {
	klines, err := s.client.KlineCloses(ctx, item.Symbol, 2)
	if err != nil {
		return nil, err
	}

	latest := klines[len(klines)-1]
	q := &model.Quote{
		Code:   item.Code,
		Name:   item.DisplayName(""),
		Kind:   item.Kind,
		Date:   latest.Date,
		Value:  model.Float(latest.Close),
		Source: s.Name(),
		Status: model.StatusOK,
	}
	if len(klines) >= 2 {
		prior := klines[len(klines)-2]
		q.Prior = model.Float(prior.Close)
		q.ChangePct = model.Float(model.ChangePct(latest.Close, prior.Close))
	} else {
		q.Status = model.StatusStale
	}
	return q, nil
}

// --- 全球指数回退链 ---

type globalMarketSource struct {
	client *Client
}

func (s *globalMarketSource) Name() string { return "eastmoney_global" }

// Fetch 按市场请求实时行情。美股接口偶发无数据，再补一次列表接口查询
func (s *globalMarketSource) Fetch(ctx context.Context, item Resolved) (*model.Quote, error) {
	if !strings.Contains(item.Symbol, ".") {
		return nil, fmt.Errorf("no secid for %s", item.Code)
	}

	quotes, err := s.client.SpotBySecIDs(ctx, item.Symbol)
	if err == nil {
		return quoteFromSpot(item, &quotes[0], s.Name()), nil
	}
	if item.Market == "us" {
		quotes, err2 := s.client.SpotByFilter(ctx, "i:"+item.Symbol)
		if err2 == nil {
			return quoteFromSpot(item, &quotes[0], s.Name()), nil
		}
	}
	return nil, err
}

type globalSnapshotSource struct {
	client *Client
}

func (s *globalSnapshotSource) Name() string { return "eastmoney_global_snapshot" }

func (s *globalSnapshotSource) Fetch(ctx context.Context, item Resolved) (*model.Quote, error) {
	quotes, err := s.client.GlobalSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	match, err := matchSnapshot(quotes, item)
	if err != nil {
		return nil, err
	}
	return quoteFromSpot(item, match, s.Name()), nil
}

// matchSnapshot 在聚合快照中定位标的：
// 代码精确匹配 > 名称精确匹配 > 唯一的代码/名称前缀匹配（忽略大小写），
// 前缀命中多条视为未命中
func matchSnapshot(quotes []spotQuote, item Resolved) (*spotQuote, error) {
	code := strings.ToUpper(item.Code)
	symbolTail := item.Symbol
	if i := strings.Index(symbolTail, "."); i >= 0 {
		symbolTail = symbolTail[i+1:]
	}
	symbolTail = strings.ToUpper(symbolTail)

	for i := range quotes {
		qc := strings.ToUpper(quotes[i].Code)
		if qc == code || qc == symbolTail {
			return &quotes[i], nil
		}
	}

	for i := range quotes {
		if quotes[i].Name != "" && (quotes[i].Name == item.AliasName || quotes[i].Name == item.Name) {
			return &quotes[i], nil
		}
	}

	var hits []int
	for i := range quotes {
		qc := strings.ToUpper(quotes[i].Code)
		qn := strings.ToUpper(quotes[i].Name)
		if strings.HasPrefix(qc, code) || strings.HasPrefix(qn, code) {
			hits = append(hits, i)
		}
	}
	switch len(hits) {
	case 1:
		return &quotes[hits[0]], nil
	case 0:
		return nil, fmt.Errorf("no snapshot match for %s", item.Code)
	default:
		log.Warn("聚合快照前缀匹配有歧义，放弃匹配",
			zap.String("code", item.Code), zap.Int("hits", len(hits)))
		return nil, fmt.Errorf("ambiguous snapshot match for %s (%d hits)", item.Code, len(hits))
	}
}

// --- 基金 ---

type fundNavSource struct {
	client *Client
	days   int
}

func (s *fundNavSource) Name() string { return "eastmoney_fund_nav" }

// Fetch 取最近 days+1 条净值，优先用接口给出的日增长率，
// 解析不出时用相邻两条净值计算
func (s *fundNavSource) Fetch(ctx context.Context, item Resolved) (*model.Quote, error) {
	navs, err := s.client.FundNav(ctx, item.Symbol, s.days+1)
	if err != nil {
		return nil, err
	}

	latest := navs[0]
	q := &model.Quote{
		Code:   item.Code,
		Name:   item.DisplayName(""),
		Kind:   item.Kind,
		Date:   latest.Date,
		Value:  model.Float(latest.Value),
		Source: s.Name(),
		Status: model.StatusOK,
	}
	if len(navs) >= 2 {
		q.Prior = model.Float(navs[1].Value)
	}
	switch {
	case latest.Growth != nil:
		q.ChangePct = model.Float(*latest.Growth)
	case q.Prior != nil:
		q.ChangePct = model.Float(model.ChangePct(latest.Value, *q.Prior))
	default:
		q.Status = model.StatusStale
	}
	return q, nil
}
