package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dethan3/tickeye/history"
	"github.com/dethan3/tickeye/model"
	"github.com/dethan3/tickeye/utils"
)

// Export 把历史行情记录导出为 CSV 或 Parquet，用于离线分析
func Export(dbPath, outputDir, format, fromDate string) error {
	start := time.Now()

	var from *time.Time
	if fromDate != "" {
		t, err := time.Parse("2006-01-02", fromDate)
		if err != nil {
			return fmt.Errorf("fromdate 参数格式无效: %w. 请使用 'YYYY-MM-DD' 格式", err)
		}
		from = &t
	}

	rec, err := history.NewRecorder(model.DBConfig{Type: model.DBTypeDuckDB, DSN: dbPath})
	if err != nil {
		return err
	}
	if err := rec.Connect(); err != nil {
		return fmt.Errorf("打开数据库失败 %s: %w", dbPath, err)
	}
	defer rec.Close()

	if latest, err := rec.LatestFetchTime(); err == nil && !latest.IsZero() {
		fmt.Printf("📅 最近一次记录时间: %s\n", latest.Format("2006-01-02 15:04:05"))
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败 %s: %w", outputDir, err)
	}

	quotes, err := rec.QueryQuotes("", from)
	if err != nil {
		return err
	}
	attempts, err := rec.QueryAttempts("", from)
	if err != nil {
		return err
	}

	fmt.Printf("🔍 共 %d 条行情记录，%d 条数据源尝试记录\n", len(quotes), len(attempts))

	switch format {
	case "parquet":
		if err := writeParquet(outputDir, "quotes.parquet", quotes); err != nil {
			return err
		}
		if err := writeParquet(outputDir, "source_attempts.parquet", attempts); err != nil {
			return err
		}
	default:
		if err := writeCSV(outputDir, "quotes.csv", quotes); err != nil {
			return err
		}
		if err := writeCSV(outputDir, "source_attempts.csv", attempts); err != nil {
			return err
		}
	}

	fmt.Printf("✅ 导出完成，耗时 %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func writeCSV[T any](dir, name string, data []T) error {
	w, err := utils.NewCSVWriter[T](filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	return w.Close()
}

func writeParquet[T any](dir, name string, data []T) error {
	w, err := utils.NewParquetWriter[T](filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	return w.Close()
}
