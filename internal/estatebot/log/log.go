package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger is a leveled logger with structured key/value fields.
// User and session identifiers travel in the context so that
// per-dialogue log lines can be correlated without threading
// them through every call site.
type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	warnLogger  *log.Logger
	debugLogger *log.Logger
	mu          sync.RWMutex
	config      *Config
}

// Config controls the output format and level of a Logger.
type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// Entry is one structured log record.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
}

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// KV builds a Field.
func KV(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type userIDKey struct{}
type sessionIDKey struct{}

// WithUserID returns a context carrying the user identifier for logging.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// WithSessionID returns a context carrying the session identifier for logging.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// NewLogger creates a logger writing per-level files under logDir.
// The info stream is mirrored to stdout.
func NewLogger(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	infoWriter, err := openLogFile(filepath.Join(logDir, "info.log"))
	if err != nil {
		return nil, err
	}
	errorWriter, err := openLogFile(filepath.Join(logDir, "error.log"))
	if err != nil {
		return nil, err
	}
	warnWriter, err := openLogFile(filepath.Join(logDir, "warn.log"))
	if err != nil {
		return nil, err
	}
	debugWriter, err := openLogFile(filepath.Join(logDir, "debug.log"))
	if err != nil {
		return nil, err
	}

	return &Logger{
		infoLogger:  log.New(io.MultiWriter(infoWriter, os.Stdout), "[INFO] ", log.LstdFlags),
		errorLogger: log.New(errorWriter, "[ERROR] ", log.LstdFlags),
		warnLogger:  log.New(warnWriter, "[WARN] ", log.LstdFlags),
		debugLogger: log.New(debugWriter, "[DEBUG] ", log.LstdFlags),
		config: &Config{
			Level:  "INFO",
			Format: "text",
		},
	}, nil
}

func openLogFile(filename string) (io.Writer, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", filename, err)
	}
	return file, nil
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, "INFO", message, fields...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, "ERROR", message, fields...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, "WARN", message, fields...)
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, message string, fields ...Field) {
	l.log(ctx, "DEBUG", message, fields...)
}

func (l *Logger) log(ctx context.Context, level, message string, fields ...Field) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry := Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}

	if ctx != nil {
		if v, ok := ctx.Value(userIDKey{}).(string); ok {
			entry.UserID = v
		}
		if v, ok := ctx.Value(sessionIDKey{}).(string); ok {
			entry.SessionID = v
		}
	}

	if len(fields) > 0 {
		entry.Fields = make(map[string]any, len(fields))
		for _, field := range fields {
			entry.Fields[field.Key] = field.Value
		}
	}

	var logMessage string
	if l.config.Format == "json" {
		logBytes, err := json.Marshal(entry)
		if err != nil {
			logMessage = fmt.Sprintf("log marshal failed: %v", err)
		} else {
			logMessage = string(logBytes)
		}
	} else {
		logMessage = l.formatTextLog(entry)
	}

	switch level {
	case "INFO":
		l.infoLogger.Println(logMessage)
	case "ERROR":
		l.errorLogger.Println(logMessage)
	case "WARN":
		l.warnLogger.Println(logMessage)
	case "DEBUG":
		l.debugLogger.Println(logMessage)
	}
}

func (l *Logger) formatTextLog(entry Entry) string {
	message := entry.Message

	if entry.UserID != "" {
		message = fmt.Sprintf("user:%s %s", entry.UserID, message)
	}
	if entry.SessionID != "" {
		message = fmt.Sprintf("session:%s %s", entry.SessionID, message)
	}

	if len(entry.Fields) > 0 {
		message += " |"
		for key, value := range entry.Fields {
			message += fmt.Sprintf(" %s=%v", key, value)
		}
	}

	return message
}

// SetConfig replaces the logger configuration.
func (l *Logger) SetConfig(config *Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config = config
}

var (
	globalLogger     *Logger
	globalLoggerOnce sync.Once
)

// GetLogger returns the process-wide logger, or nil before InitializeLogger.
func GetLogger() *Logger {
	return globalLogger
}

// InitializeLogger initializes the process-wide logger once.
func InitializeLogger(logDir string) (*Logger, error) {
	var err error
	globalLoggerOnce.Do(func() {
		globalLogger, err = NewLogger(logDir)
	})
	return globalLogger, err
}
