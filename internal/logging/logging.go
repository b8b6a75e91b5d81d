// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	Level      string
	JSONFormat bool
	// FileName enables rotating file output in addition to stdout
	FileName string
}

// Setup applies params to the standard logrus logger and returns the file
// writer, if any, so the caller can close it on shutdown.
func Setup(params SetupParams) io.Closer {
	if params.JSONFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.Level))

	if params.FileName == "" {
		logrus.SetOutput(os.Stdout)
		return nil
	}

	if !strings.HasSuffix(params.FileName, ".log") {
		params.FileName += ".log"
	}

	fileLogger := &lumberjack.Logger{
		Filename:   params.FileName,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
	logrus.Infof("writing logs to stdout and %s", params.FileName)

	return fileLogger
}

// GetLevel maps a config string to a logrus level, defaulting to info
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
