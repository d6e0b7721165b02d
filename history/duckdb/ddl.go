package duckdb

import (
	"fmt"
	"strings"

	"github.com/dethan3/tickeye/model"
)

// mapType 将通用 DataType 转换为 DuckDB 的 SQL 类型
func (d *DuckDBDriver) mapType(dt model.DataType) string {
	switch dt {
	case model.TypeString:
		return "VARCHAR"
	case model.TypeFloat64:
		return "DOUBLE"
	case model.TypeInt64:
		return "BIGINT"
	case model.TypeDate:
		return "DATE"
	case model.TypeDateTime:
		return "TIMESTAMP"
	default:
		return "VARCHAR"
	}
}

func (d *DuckDBDriver) createTableInternal(meta *model.TableMeta) error {
	var colDefs []string
	for _, col := range meta.Columns {
		sqlType := d.mapType(col.Type)
		colDefs = append(colDefs, fmt.Sprintf("%s %s", col.Name, sqlType))
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		meta.TableName, strings.Join(colDefs, ", "))

	_, err := d.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", meta.TableName, err)
	}
	return nil
}

func (d *DuckDBDriver) registerViews() {

	// 1. 每个标的最近一次成功记录 (ViewLatest)
	d.viewImpls[model.ViewLatest] = func() error {
		query := fmt.Sprintf(`
			CREATE OR REPLACE VIEW %s AS
			SELECT q.*
			FROM %s q
			WHERE q.status = 'ok'
			  AND q.fetched_at = (
				SELECT max(q2.fetched_at)
				FROM %s q2
				WHERE q2.code = q.code AND q2.status = 'ok'
			  )
		`, model.ViewLatest,
			model.TableQuotes.TableName,
			model.TableQuotes.TableName)

		_, err := d.db.Exec(query)
		return err
	}

	// 2. 数据源健康统计 (ViewSourceHealth)
	d.viewImpls[model.ViewSourceHealth] = func() error {
		query := fmt.Sprintf(`
			CREATE OR REPLACE VIEW %s AS
			SELECT
				source,
				count(*) AS attempts,
				count(*) FILTER (WHERE outcome = 'ok') AS ok_count,
				count(*) FILTER (WHERE outcome != 'ok') AS fail_count,
				ROUND(count(*) FILTER (WHERE outcome = 'ok') * 100.0 / count(*), 2) AS ok_pct
			FROM %s
			GROUP BY source
		`, model.ViewSourceHealth,
			model.TableSourceAttempts.TableName)

		_, err := d.db.Exec(query)
		return err
	}
}
