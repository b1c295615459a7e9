package log

import (
	"context"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const ctxLoggerKey = "zapLogger"

type Logger struct {
	*zap.Logger
}

// NewLog builds the application logger from config. Output always goes to
// the rotated log file; in console encoding it is mirrored to stdout.
func NewLog(conf *viper.Viper) *Logger {
	lp := conf.GetString("log.log_file_name")
	lv := conf.GetString("log.log_level")

	var level zapcore.Level
	switch lv {
	case "debug":
		level = zap.DebugLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	default:
		level = zap.InfoLevel
	}

	hook := &lumberjack.Logger{
		Filename:   lp,
		MaxSize:    conf.GetInt("log.max_size"),
		MaxBackups: conf.GetInt("log.max_backups"),
		MaxAge:     conf.GetInt("log.max_age"),
		Compress:   conf.GetBool("log.compress"),
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.Format("2006-01-02 15:04:05.000")) },
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	ws := []zapcore.WriteSyncer{zapcore.AddSync(hook)}
	if conf.GetString("log.encoding") == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		ws = append(ws, zapcore.AddSync(os.Stdout))
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(ws...), level)
	return &Logger{zap.New(core, zap.AddCaller())}
}

// WithValue returns a context carrying a logger enriched with fields.
func (l *Logger) WithValue(ctx context.Context, fields ...zapcore.Field) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, l.WithContext(ctx).With(fields...)) //nolint:staticcheck
}

// WithContext returns the logger stored in ctx, or the receiver.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	zl := ctx.Value(ctxLoggerKey)
	if logger, ok := zl.(*zap.Logger); ok {
		return &Logger{logger}
	}
	return l
}
