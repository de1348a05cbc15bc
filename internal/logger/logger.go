package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/burnoutguard/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init succeeds and
// every helper below is a no-op until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	JSON      bool
	ConfigDir string
}

// Init points the global logger at a rotating file under ConfigDir/logs.
// In debug mode records are mirrored to stderr.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	level := log.WarnLevel
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
		level = log.DebugLevel
	}

	Logger = New(writer, level, cfg.JSON)
	Logger.SetReportCaller(cfg.Debug)
	return nil
}

// New builds a logger with the application prefix on an arbitrary writer.
func New(w io.Writer, level log.Level, json bool) *log.Logger {
	formatter := log.TextFormatter
	if json {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       formatter,
	})
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}

// Observer forwards analysis traces to a logger at debug level.
type Observer struct {
	l *log.Logger
}

// NewObserver returns an Observer bound to l, or to the global logger when
// l is nil.
func NewObserver(l *log.Logger) Observer {
	return Observer{l: l}
}

func (o Observer) Trace(msg string, keyvals ...interface{}) {
	l := o.l
	if l == nil {
		l = Logger
	}
	if l != nil {
		l.With("component", "engine").Debug(msg, keyvals...)
	}
}
