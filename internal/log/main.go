package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// The logging library being used everywhere.
var Log = Logging{
	Logger: "logrus",
}

// -----------------
// This a gologging
// -> github.com/op/go-logging

var gologging = logging.MustGetLogger("motion")

func ConfigureGoLogging(level string, logDirectory string) {
	var format = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
	)
	var fileFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s} %{id:03x} %{message}`,
	)
	stdBackend := logging.NewLogBackend(os.Stderr, "", 0)
	backends := []logging.Backend{logging.NewBackendFormatter(stdBackend, format)}

	if logDirectory != "" {
		fileBackend := logging.NewLogBackend(&lumberjack.Logger{
			Filename: filepath.Join(logDirectory, "motion-analyzer.log"),
			MaxSize:  2, // megabytes
			Compress: true,
		}, "", 0)
		backends = append(backends, logging.NewBackendFormatter(fileBackend, fileFormat))
	}

	leveled := logging.AddModuleLevel(logging.MultiLogger(backends...))
	leveled.SetLevel(goLoggingLevel(level), "")
	logging.SetBackend(leveled)
}

func goLoggingLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.DEBUG
	case "warning":
		return logging.WARNING
	case "error":
		return logging.ERROR
	case "fatal":
		return logging.CRITICAL
	default:
		return logging.INFO
	}
}

// -----------------
// This a logrus
// -> github.com/sirupsen/logrus

func ConfigureLogrus(level string, logDirectory string, timezone *time.Location) {
	// Log as JSON, using the configured timezone for timestamps.
	logrus.SetFormatter(LocalTimeZoneFormatter{
		Timezone:  timezone,
		Formatter: &logrus.JSONFormatter{},
	})

	var output io.Writer = os.Stdout
	if logDirectory != "" {
		output = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename: filepath.Join(logDirectory, "motion-analyzer.log"),
			MaxSize:  2, // megabytes
			Compress: true,
		})
	}
	logrus.SetOutput(output)
	logrus.SetLevel(logrusLevel(level))
}

func logrusLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "error":
		return logrus.ErrorLevel
	case "debug":
		return logrus.DebugLevel
	case "fatal":
		return logrus.FatalLevel
	case "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type LocalTimeZoneFormatter struct {
	Timezone  *time.Location
	Formatter logrus.Formatter
}

func (u LocalTimeZoneFormatter) Format(e *logrus.Entry) ([]byte, error) {
	if u.Timezone != nil {
		e.Time = e.Time.In(u.Timezone)
	}
	return u.Formatter.Format(e)
}

type Logging struct {
	Logger string
}

func (l *Logging) Init(level string, logDirectory string, timezone *time.Location) {
	switch l.Logger {
	case "go-logging":
		ConfigureGoLogging(level, logDirectory)
	default:
		// Unknown backends fall back to logrus.
		l.Logger = "logrus"
		ConfigureLogrus(level, logDirectory, timezone)
	}
}

func (l *Logging) Info(sentence string) {
	switch l.Logger {
	case "go-logging":
		gologging.Info(sentence)
	case "logrus":
		logrus.Info(sentence)
	default:
	}
}

func (l *Logging) Warning(sentence string) {
	switch l.Logger {
	case "go-logging":
		gologging.Warning(sentence)
	case "logrus":
		logrus.Warn(sentence)
	default:
	}
}

func (l *Logging) Debug(sentence string) {
	switch l.Logger {
	case "go-logging":
		gologging.Debug(sentence)
	case "logrus":
		logrus.Debug(sentence)
	default:
	}
}

func (l *Logging) Error(sentence string) {
	switch l.Logger {
	case "go-logging":
		gologging.Error(sentence)
	case "logrus":
		logrus.Error(sentence)
	default:
	}
}

func (l *Logging) Fatal(sentence string) {
	switch l.Logger {
	case "go-logging":
		gologging.Fatal(sentence)
	case "logrus":
		logrus.Fatal(sentence)
	default:
	}
}
