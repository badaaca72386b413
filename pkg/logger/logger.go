package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type Logger struct {
	level  Level
	logger zerolog.Logger
}

func New(levelStr string) *Logger {
	return NewWithWriter(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}, levelStr)
}

// NewWithWriter builds a logger that writes to w instead of stdout.
func NewWithWriter(w io.Writer, levelStr string) *Logger {
	level := parseLevel(levelStr)
	return &Logger{
		level:  level,
		logger: zerolog.New(w).Level(toZerolog(level)).With().Timestamp().Logger(),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{level: ErrorLevel, logger: zerolog.Nop()}
}

func parseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child logger that tags every line with key=value.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		level:  l.level,
		logger: l.logger.With().Interface(key, value).Logger(),
	}
}

func (l *Logger) Debug(v ...interface{}) {
	l.logger.Debug().Msg(fmt.Sprint(v...))
}

func (l *Logger) Info(v ...interface{}) {
	l.logger.Info().Msg(fmt.Sprint(v...))
}

func (l *Logger) Warn(v ...interface{}) {
	l.logger.Warn().Msg(fmt.Sprint(v...))
}

func (l *Logger) Error(v ...interface{}) {
	l.logger.Error().Msg(fmt.Sprint(v...))
}

func (l *Logger) Fatal(v ...interface{}) {
	l.logger.Error().Msg(fmt.Sprint(v...))
	os.Exit(1)
}
