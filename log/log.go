package log

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogMaxSize = 300 // MB

// Config 日志配置，Level 为空时默认 info
type Config struct {
	Level      string
	Stdout     bool
	LogPath    string
	MaxSize    int
	MaxBackups int
	MaxDays    int
}

var (
	_globalL atomic.Value
	_globalS atomic.Value
	_globalP atomic.Value
)

// ZapProperties 记录可动态调整的日志级别
type ZapProperties struct {
	Level zap.AtomicLevel
}

func init() {
	lg, props, _ := InitLogger(&Config{Level: "info", Stdout: true})
	ReplaceGlobals(lg, props)
}

// InitLogger 初始化 zap logger，可选输出到滚动文件
func InitLogger(cfg *Config, opts ...zap.Option) (*zap.Logger, *ZapProperties, error) {
	level := zap.NewAtomicLevel()
	lvText := cfg.Level
	if lvText == "" {
		lvText = "info"
	}
	if err := level.UnmarshalText([]byte(lvText)); err != nil {
		return nil, nil, err
	}

	var outputs []zapcore.WriteSyncer
	if cfg.LogPath != "" {
		maxSize := cfg.MaxSize
		if maxSize == 0 {
			maxSize = defaultLogMaxSize
		}
		outputs = append(outputs, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxDays,
			LocalTime:  true,
		}))
	}
	if cfg.Stdout || len(outputs) == 0 {
		outputs = append(outputs, zapcore.AddSync(os.Stderr))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zap.CombineWriteSyncers(outputs...),
		level,
	)
	lg := zap.New(core, opts...)
	return lg, &ZapProperties{Level: level}, nil
}

// Setup 按配置重建全局 logger
func Setup(cfg *Config) error {
	lg, props, err := InitLogger(cfg)
	if err != nil {
		return err
	}
	ReplaceGlobals(lg, props)
	return nil
}

// SetLevel 动态调整全局日志级别，非法值保持原级别
func SetLevel(text string) error {
	props := _globalP.Load().(*ZapProperties)
	var lv zapcore.Level
	if err := lv.UnmarshalText([]byte(text)); err != nil {
		return err
	}
	props.Level.SetLevel(lv)
	return nil
}

// L 返回全局 Logger，并发安全
func L() *zap.Logger {
	return _globalL.Load().(*zap.Logger)
}

// S 返回全局 SugaredLogger，并发安全
func S() *zap.SugaredLogger {
	return _globalS.Load().(*zap.SugaredLogger)
}

// ReplaceGlobals 替换全局 Logger
func ReplaceGlobals(logger *zap.Logger, props *ZapProperties) {
	_globalL.Store(logger)
	_globalS.Store(logger.Sugar())
	_globalP.Store(props)
}

// Sync 刷新缓冲的日志
func Sync() error {
	return L().Sync()
}
