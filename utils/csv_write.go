package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"reflect"
	"time"
)

// CSVWriter 通用 CSV 写入器，列名来自 col 标签
type CSVWriter[T any] struct {
	file          *os.File
	writer        *csv.Writer
	headerWritten bool
	columns       []columnInfo
}

type columnInfo struct {
	Index      int    // 字段索引
	HeaderName string // CSV 表头 (来自 col 标签)
	IsTime     bool   // 字段本身是否是 time.Time
	IsDateType bool   // 是否标记了 type:"date"
	IsPtr      bool   // 可空字段，nil 输出为空
}

// NewCSVWriter 初始化
func NewCSVWriter[T any](filename string) (*CSVWriter[T], error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	w := csv.NewWriter(f)

	// 解析结构体 Tag (只需做一次)
	cols, err := analyzeStructTags[T]()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &CSVWriter[T]{
		file:    f,
		writer:  w,
		columns: cols,
	}, nil
}

// analyzeStructTags 解析 col 和 type 标签
func analyzeStructTags[T any]() ([]columnInfo, error) {
	var t T
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("generic type T must be a struct")
	}

	var cols []columnInfo
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		colTag := field.Tag.Get("col")
		if colTag == "" {
			colTag = field.Name
		}

		typeTag := field.Tag.Get("type")
		isDateType := (typeTag == "date")

		ft := field.Type
		isPtr := ft.Kind() == reflect.Ptr
		if isPtr {
			ft = ft.Elem()
		}
		isTime := ft == reflect.TypeOf(time.Time{})

		cols = append(cols, columnInfo{
			Index:      i,
			HeaderName: colTag,
			IsTime:     isTime,
			IsDateType: isDateType,
			IsPtr:      isPtr,
		})
	}
	return cols, nil
}

// Write 写入数据
func (cw *CSVWriter[T]) Write(data []T) error {
	if len(data) == 0 {
		return nil
	}

	if !cw.headerWritten {
		headers := make([]string, len(cw.columns))
		for i, col := range cw.columns {
			headers[i] = col.HeaderName
		}
		if err := cw.writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		cw.headerWritten = true
	}

	record := make([]string, len(cw.columns))
	for _, item := range data {
		val := reflect.ValueOf(item)
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}

		for i, col := range cw.columns {
			fieldVal := val.Field(col.Index)

			// 可空字段：nil 留空
			if col.IsPtr {
				if fieldVal.IsNil() {
					record[i] = ""
					continue
				}
				fieldVal = fieldVal.Elem()
			}

			if col.IsTime {
				t := fieldVal.Interface().(time.Time)
				switch {
				case t.IsZero():
					record[i] = ""
				case col.IsDateType:
					record[i] = t.Format("2006-01-02")
				default:
					record[i] = t.Format("2006-01-02 15:04:05")
				}
				continue
			}

			record[i] = fmt.Sprint(fieldVal.Interface())
		}

		if err := cw.writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}

func (cw *CSVWriter[T]) Close() error {
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		cw.file.Close()
		return fmt.Errorf("failed to flush: %w", err)
	}
	return cw.file.Close()
}
