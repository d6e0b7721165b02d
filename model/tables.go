package model

import (
	"reflect"
	"strings"
	"sync"
	"time"
)

type DataType int

const (
	TypeString DataType = iota
	TypeFloat64
	TypeInt64
	TypeDate     // YYYY-MM-DD
	TypeDateTime // YYYY-MM-DD HH:MM:SS
)

type Column struct {
	Name string
	Type DataType
}

type TableMeta struct {
	TableName  string
	Columns    []Column
	OrderByKey []string
}

var (
	tableRegistry   []*TableMeta
	tableRegistryMu sync.Mutex
)

func registerTable(t *TableMeta) {
	tableRegistryMu.Lock()
	defer tableRegistryMu.Unlock()
	tableRegistry = append(tableRegistry, t)
}

// AllTables 返回当前所有已注册的表结构
func AllTables() []*TableMeta {
	tableRegistryMu.Lock()
	defer tableRegistryMu.Unlock()

	result := make([]*TableMeta, len(tableRegistry))
	copy(result, tableRegistry)
	return result
}

// SchemaFromStruct 通过反射生成 TableMeta 并自动注册
func SchemaFromStruct(tableName string, model interface{}, orderByKey []string) *TableMeta {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var cols []Column

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		colName := field.Tag.Get("col")
		if colName == "" {
			colName = strings.ToLower(field.Name)
		}

		var dType DataType
		customType := field.Tag.Get("type")
		switch {
		case customType == "date":
			dType = TypeDate
		case customType == "datetime":
			dType = TypeDateTime
		default:
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			switch ft.Kind() {
			case reflect.String:
				dType = TypeString
			case reflect.Float64, reflect.Float32:
				dType = TypeFloat64
			case reflect.Int, reflect.Int64, reflect.Int32, reflect.Uint32:
				dType = TypeInt64
			case reflect.Struct:
				if ft == reflect.TypeOf(time.Time{}) {
					dType = TypeDateTime
				}
			default:
				dType = TypeString
			}
		}

		cols = append(cols, Column{Name: colName, Type: dType})
	}

	meta := &TableMeta{
		TableName:  tableName,
		Columns:    cols,
		OrderByKey: orderByKey,
	}

	registerTable(meta)

	return meta
}

// --- 结构体定义 (Schema) ---

// QuoteRecord 行情历史表的一行，记录每次运行的最终结果
type QuoteRecord struct {
	Code      string    `db:"code"       col:"code"       parquet:"code,dict"`
	Name      string    `db:"name"       col:"name"       parquet:"name,dict"`
	Kind      string    `db:"kind"       col:"kind"       parquet:"kind,dict"`
	Date      string    `db:"date"       col:"date"       parquet:"date"`
	Value     *float64  `db:"value"      col:"value"      parquet:"value,optional"`
	Prior     *float64  `db:"prior"      col:"prior"      parquet:"prior,optional"`
	ChangePct *float64  `db:"change_pct" col:"change_pct" parquet:"change_pct,optional"`
	Source    string    `db:"source"     col:"source"     parquet:"source,dict"`
	Status    string    `db:"status"     col:"status"     parquet:"status,dict"`
	FetchedAt time.Time `db:"fetched_at" col:"fetched_at" parquet:"fetched_at" type:"datetime"`
}

// SourceAttempt 回退链上每一次数据源尝试，用于事后排查数据源抖动
type SourceAttempt struct {
	Code      string    `db:"code"       col:"code"       parquet:"code,dict"`
	Source    string    `db:"source"     col:"source"     parquet:"source,dict"`
	Seq       int       `db:"seq"        col:"seq"        parquet:"seq"`
	Outcome   string    `db:"outcome"    col:"outcome"    parquet:"outcome,dict"`
	Detail    string    `db:"detail"     col:"detail"     parquet:"detail"`
	FetchedAt time.Time `db:"fetched_at" col:"fetched_at" parquet:"fetched_at" type:"datetime"`
}

// --- 表结构元数据 (TableMeta) ---

var TableQuotes = SchemaFromStruct(
	"quotes",
	QuoteRecord{},
	[]string{"code", "fetched_at"},
)

var TableSourceAttempts = SchemaFromStruct(
	"source_attempts",
	SourceAttempt{},
	[]string{"code", "fetched_at", "seq"},
)

// RecordOf 由最终 Quote 生成一行历史记录
func RecordOf(q *Quote) *QuoteRecord {
	return &QuoteRecord{
		Code:      q.Code,
		Name:      q.Name,
		Kind:      string(q.Kind),
		Date:      q.Date,
		Value:     q.Value,
		Prior:     q.Prior,
		ChangePct: q.ChangePct,
		Source:    q.Source,
		Status:    string(q.Status),
		FetchedAt: q.FetchedAt,
	}
}
