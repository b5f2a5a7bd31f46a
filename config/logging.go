package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging routes the standard logger to stdout, plus a size-rotated
// file when MAGNETAR_LOG_FILE is set.
func SetupLogging() {
	var out io.Writer = os.Stdout
	if p := LogFilePath(); p != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   p,
			MaxSize:    LogMaxSizeMB(),
			MaxBackups: LogMaxBackups(),
			Compress:   true,
		})
	}
	log.SetOutput(out)
	log.Printf("[init] logging configured (file=%q)", LogFilePath())
}
