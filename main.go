package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dethan3/tickeye/cmd"
	"github.com/dethan3/tickeye/config"
	"github.com/dethan3/tickeye/log"
)

func main() {
	// 日志文件走滚动文件输出，级别单独可调
	if logFile := os.Getenv(config.EnvLogFile); logFile != "" {
		if err := log.Setup(&log.Config{
			Level:   os.Getenv(config.EnvLogLevel),
			Stdout:  true,
			LogPath: logFile,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️ 日志文件初始化失败: %v\n", err)
		}
	} else if level := os.Getenv(config.EnvLogLevel); level != "" {
		if err := log.SetLevel(level); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️ 无效的日志级别 %q\n", level)
		}
	}

	var cfgPath, aliasPath, dbPath string
	var sendTable bool

	var rootCmd = &cobra.Command{
		Use:           "tickeye [days] [table]",
		Short:         "基金与指数行情监控",
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			days := 1
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
					days = n
				} else {
					fmt.Printf("⚠️ 无效的天数参数 %q，使用默认值 1\n", args[0])
				}
			}
			if len(args) > 1 && args[1] == "table" {
				sendTable = true
			}
			return cmd.Report(days, cfgPath, aliasPath, dbPath, sendTable)
		},
	}

	rootCmd.Flags().StringVar(&cfgPath, "config", "tickeye.yaml", "监控清单配置文件路径")
	rootCmd.Flags().StringVar(&aliasPath, "alias", "", "指数别名表路径，为空时使用内置表")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "DuckDB 文件路径，记录运行历史（可选）")
	rootCmd.Flags().BoolVar(&sendTable, "table", false, "额外发送表格形式的飞书消息")

	var output, format, fromDate string

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "导出历史行情记录用于离线分析",
		RunE: func(c *cobra.Command, args []string) error {
			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			return cmd.Export(dbPath, output, format, fromDate)
		},
	}

	exportCmd.Flags().StringVar(&dbPath, "db", "", "DuckDB 文件路径 (必填)")
	exportCmd.Flags().StringVar(&output, "output", "", "输出目录 (必填)")
	exportCmd.Flags().StringVar(&format, "format", "csv", "导出格式: csv 或 parquet")
	exportCmd.Flags().StringVar(&fromDate, "fromdate", "", "导出起始日期，格式为 'YYYY-MM-DD'，可选，为空时导出所有")
	exportCmd.MarkFlagRequired("db")
	exportCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(exportCmd)

	cobra.OnFinalize(func() {
		_ = log.Sync()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "🛑 错误: %v\n", err)
		os.Exit(1)
	}
}
