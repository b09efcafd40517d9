// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package genericconf

import (
	"fmt"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalFileLogger = fileLogger{}

// fileLogger is the rotated log file of a native run. Writes go straight to lumberjack;
// the program has one thread of control, so there is nothing to buffer for.
type fileLogger struct {
	mutex  sync.Mutex
	writer *lumberjack.Logger
}

func (l *fileLogger) Write(p []byte) (int, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.writer == nil {
		return 0, fmt.Errorf("file logger closed")
	}
	return l.writer.Write(p)
}

func (l *fileLogger) open(config *FileLoggingConfig, filename string) io.Writer {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.writer = &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		LocalTime:  config.LocalTime,
		Compress:   config.Compress,
	}
	return l
}

func (l *fileLogger) close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.writer == nil {
		return nil
	}
	err := l.writer.Close()
	l.writer = nil
	return err
}

// InitLog installs the default logger. Records go to output, and additionally to a
// rotated file when file logging is enabled; pathResolver is only consulted then.
// Not thread safe.
func InitLog(logType string, logLevel string, output io.Writer, fileLoggingConfig *FileLoggingConfig, pathResolver func(string) string) error {
	if err := globalFileLogger.close(); err != nil {
		return fmt.Errorf("failed to close previous log file: %w", err)
	}
	handler, err := HandlerFromLogType(logType, output)
	if err != nil {
		return fmt.Errorf("error parsing log type when creating handler: %w", err)
	}
	slogLevel, err := ToSlogLevel(logLevel)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}
	if fileLoggingConfig.Enable {
		// Validated above, so it cannot fail here.
		handler, _ = HandlerFromLogType(logType, io.MultiWriter(
			output,
			globalFileLogger.open(fileLoggingConfig, pathResolver(fileLoggingConfig.File)),
		))
	}

	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(slogLevel)
	log.SetDefault(log.NewLogger(glogger))
	return nil
}

// CloseFileLogger flushes and closes the log file, if any.
func CloseFileLogger() error {
	return globalFileLogger.close()
}
