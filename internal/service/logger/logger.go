package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	AccessLogger *zap.Logger = zap.NewNop()
	DBLogger     *zap.Logger = zap.NewNop()
)

// InitLoggers writes access.log and db.log into LOG_DIR (current directory by default).
func InitLoggers() error {
	dir := os.Getenv("LOG_DIR")

	var err error
	AccessLogger, err = newFileLogger(filepath.Join(dir, "access.log"))
	if err != nil {
		return err
	}

	DBLogger, err = newFileLogger(filepath.Join(dir, "db.log"))
	if err != nil {
		return err
	}

	return nil
}

func newFileLogger(path string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

func SyncLoggers() error {
	err := AccessLogger.Sync()
	if err != nil {
		return err
	}
	err = DBLogger.Sync()
	if err != nil {
		return err
	}
	return nil
}
