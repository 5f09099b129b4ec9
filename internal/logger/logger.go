package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Init initializes the global logger.
// Logs are written to ~/.config/sxcedit/sxcedit.log unless overridden.
func Init(debug bool) error {
	logPath, err := getLogPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}

	// Truncate on each run
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		level,
	)

	L = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	S = L.Sugar()

	S.Infow("logger initialized", "path", logPath, "debug", debug)
	return nil
}

// Close flushes and closes the logger. The globals are reset so later
// calls become no-ops.
func Close() error {
	var err error
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		err = logFile.Close()
	}
	L, S, logFile = nil, nil, nil
	return err
}

func getLogPath() (string, error) {
	if v := os.Getenv("SXCEDIT_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("SXCEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sxcedit.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sxcedit", "sxcedit.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sxcedit", "sxcedit.log"), nil
}

// Convenience functions for common logging patterns

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}
