package duckdb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dethan3/tickeye/model"
)

func (d *DuckDBDriver) SaveQuotes(records []*model.QuoteRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
			(code, name, kind, date, value, prior, change_pct, source, status, fetched_at)
		VALUES
			(:code, :name, :kind, :date, :value, :prior, :change_pct, :source, :status, :fetched_at)
	`, model.TableQuotes.TableName)

	if _, err := d.db.NamedExec(query, records); err != nil {
		return fmt.Errorf("failed to save quotes: %w", err)
	}
	return nil
}

func (d *DuckDBDriver) SaveAttempts(attempts []*model.SourceAttempt) error {
	if len(attempts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s
			(code, source, seq, outcome, detail, fetched_at)
		VALUES
			(:code, :source, :seq, :outcome, :detail, :fetched_at)
	`, model.TableSourceAttempts.TableName)

	if _, err := d.db.NamedExec(query, attempts); err != nil {
		return fmt.Errorf("failed to save source attempts: %w", err)
	}
	return nil
}

func (d *DuckDBDriver) QueryQuotes(code string, from *time.Time) ([]model.QuoteRecord, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if code != "" {
		conditions = append(conditions, "code = ?")
		args = append(args, code)
	}
	if from != nil {
		conditions = append(conditions, "fetched_at >= ?")
		args = append(args, *from)
	}

	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE %s ORDER BY code, fetched_at ASC`,
		model.TableQuotes.TableName,
		strings.Join(conditions, " AND "),
	)

	var results []model.QuoteRecord
	if err := d.db.Select(&results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}

	return results, nil
}

func (d *DuckDBDriver) QueryAttempts(code string, from *time.Time) ([]model.SourceAttempt, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if code != "" {
		conditions = append(conditions, "code = ?")
		args = append(args, code)
	}
	if from != nil {
		conditions = append(conditions, "fetched_at >= ?")
		args = append(args, *from)
	}

	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE %s ORDER BY code, fetched_at, seq ASC`,
		model.TableSourceAttempts.TableName,
		strings.Join(conditions, " AND "),
	)

	var results []model.SourceAttempt
	if err := d.db.Select(&results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query source attempts: %w", err)
	}

	return results, nil
}

func (d *DuckDBDriver) LatestFetchTime() (time.Time, error) {
	query := fmt.Sprintf("SELECT max(fetched_at) AS latest FROM %s", model.TableQuotes.TableName)

	var latest sql.NullTime
	err := d.db.Get(&latest, query)
	if err != nil {
		return time.Time{}, err
	}

	if !latest.Valid {
		return time.Time{}, nil
	}

	return latest.Time, nil
}
