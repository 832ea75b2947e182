package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger - интерфейс для логирования
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	With(key string, value interface{}) Logger
}

// zerologLogger - реализация Logger на основе zerolog
type zerologLogger struct {
	logger zerolog.Logger
}

// New создает новый logger с заданным уровнем и форматом
func New(level, format, output string) Logger {
	// Парсим уровень логирования
	logLevel := parseLevel(level)
	zerolog.SetGlobalLevel(logLevel)

	writer := openOutput(output)

	// Настраиваем формат
	if format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()

	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	l.addFields(event, fields)
	event.Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	l.addFields(event, fields)
	event.Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	l.addFields(event, fields)
	event.Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	l.addFields(event, fields)
	event.Msg(msg)
}

func (l *zerologLogger) Fatal(msg string, fields ...map[string]interface{}) {
	event := l.logger.Fatal()
	l.addFields(event, fields)
	event.Msg(msg)
}

func (l *zerologLogger) With(key string, value interface{}) Logger {
	return &zerologLogger{logger: l.logger.With().Interface(key, value).Logger()}
}

// addFields добавляет поля к событию; ошибки пишутся строкой
func (l *zerologLogger) addFields(event *zerolog.Event, fields []map[string]interface{}) {
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			if err, ok := value.(error); ok {
				event.Str(key, err.Error())
				continue
			}
			event.Interface(key, value)
		}
	}
}

// openOutput возвращает stdout, stderr или файл (дописывается).
// Если файл открыть не удалось, пишем в stderr.
func openOutput(output string) io.Writer {
	switch output {
	case "", "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	}

	if dir := filepath.Dir(output); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stderr
	}
	return file
}

// parseLevel преобразует строковое значение уровня в zerolog.Level
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewNoop - logger, который ничего не пишет (для тестов)
func NewNoop() Logger {
	return &zerologLogger{logger: zerolog.New(io.Discard)}
}

// NewWriter пишет JSON в произвольный writer (используется в тестах middleware)
func NewWriter(w io.Writer) Logger {
	return &zerologLogger{logger: zerolog.New(w).With().Timestamp().Logger()}
}
