package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the simplifier binaries.
// Lines look like: 2026-01-02T15:04:05Z [INFO] request_id=abc message

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = parseLevel(l)
}

// SetOutput redirects log output, mainly for tests and the CLI (stderr).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

func parseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func output(l Level, fields, format string, v ...interface{}) {
	mu.RLock()
	out := logger
	mu.RUnlock()
	head := fmt.Sprintf("%s [%s] ", time.Now().UTC().Format(time.RFC3339), strings.ToUpper(l.String()))
	out.Print(head + fields + fmt.Sprintf(format, v...))
}

// Entry carries key=value fields that prefix every message logged through it.
type Entry struct {
	fields string
}

// With returns an Entry with the given key/value pair attached.
func With(key string, value interface{}) *Entry {
	return (&Entry{}).With(key, value)
}

func (e *Entry) With(key string, value interface{}) *Entry {
	return &Entry{fields: e.fields + fmt.Sprintf("%s=%v ", key, value)}
}

func (e *Entry) Debugf(format string, v ...interface{}) { e.logf(LevelDebug, format, v...) }
func (e *Entry) Infof(format string, v ...interface{})  { e.logf(LevelInfo, format, v...) }
func (e *Entry) Warnf(format string, v ...interface{})  { e.logf(LevelWarn, format, v...) }
func (e *Entry) Errorf(format string, v ...interface{}) { e.logf(LevelError, format, v...) }

func (e *Entry) logf(l Level, format string, v ...interface{}) {
	if !shouldLog(l) {
		return
	}
	output(l, e.fields, format, v...)
}

var root = &Entry{}

func Debugf(format string, v ...interface{}) { root.logf(LevelDebug, format, v...) }
func Infof(format string, v ...interface{})  { root.logf(LevelInfo, format, v...) }
func Warnf(format string, v ...interface{})  { root.logf(LevelWarn, format, v...) }
func Errorf(format string, v ...interface{}) { root.logf(LevelError, format, v...) }

func Fatalf(format string, v ...interface{}) {
	output(LevelFatal, "", format, v...)
	os.Exit(1)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}
