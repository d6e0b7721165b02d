package utils

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ParquetWriter 通用 Parquet 写入器
type ParquetWriter[T any] struct {
	file   *os.File
	writer *parquet.GenericWriter[T]
}

// NewParquetWriter 创建写入器，默认 Snappy 压缩，
// options 可覆盖压缩和缓冲配置
func NewParquetWriter[T any](filename string, options ...parquet.WriterOption) (*ParquetWriter[T], error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	defaultOpts := []parquet.WriterOption{
		parquet.Compression(&parquet.Snappy),
		parquet.WriteBufferSize(4 * 1024 * 1024),
		parquet.PageBufferSize(64 * 1024),
	}
	finalOpts := append(defaultOpts, options...)

	pw := parquet.NewGenericWriter[T](f, finalOpts...)

	return &ParquetWriter[T]{
		file:   f,
		writer: pw,
	}, nil
}

// Write 写入一批数据
func (p *ParquetWriter[T]) Write(data []T) error {
	if len(data) == 0 {
		return nil
	}
	_, err := p.writer.Write(data)
	return err
}

// Close 先关闭 writer 写入 footer，再关闭文件
func (p *ParquetWriter[T]) Close() error {
	if err := p.writer.Close(); err != nil {
		p.file.Close()
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	if err := p.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}
