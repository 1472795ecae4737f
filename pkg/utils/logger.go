package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger writes JSON to a rotated file under LogPath and to stdout
// (console format when Debug). Every entry carries the app name.
func InitLogger(config AppConfig) (*zap.Logger, error) {
	path, debug := config.LogPath, config.Debug
	name := config.Name
	if name == "" {
		name = "marketplace-console"
	}

	if path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	// file always gets JSON, stdout gets console format in debug
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	stdoutEncoder := zapcore.NewJSONEncoder(encoderConfig)
	if debug {
		stdoutEncoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	logLevel := zap.InfoLevel
	if debug {
		logLevel = zap.DebugLevel
	}

	// File sink with rotation
	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(path, name+".log"),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})

	consoleWriter := zapcore.AddSync(os.Stdout)

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, fileWriter, logLevel),
		zapcore.NewCore(stdoutEncoder, consoleWriter, logLevel),
	)

	return zap.New(core, zap.AddCaller()).With(zap.String("app", name)), nil
}
