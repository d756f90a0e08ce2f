package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Logger defines the common logging interface for all services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StandardLogger writes structured JSON in production and human-readable
// lines during development.
type StandardLogger struct {
	logger     *log.Logger
	level      LogLevel
	service    string
	structured bool
}

func NewStandardLogger(service string) *StandardLogger {
	return &StandardLogger{
		logger:  log.New(os.Stdout, "", 0),
		level:   LogLevelInfo,
		service: service,
	}
}

func (s *StandardLogger) SetLevel(level LogLevel)       { s.level = level }
func (s *StandardLogger) SetStructured(structured bool) { s.structured = structured }

func (s *StandardLogger) Info(msg string, keysAndValues ...interface{}) {
	s.write(LogLevelInfo, msg, keysAndValues...)
}

func (s *StandardLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.write(LogLevelWarn, msg, keysAndValues...)
}

func (s *StandardLogger) Error(msg string, keysAndValues ...interface{}) {
	s.write(LogLevelError, msg, keysAndValues...)
}

func (s *StandardLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.write(LogLevelDebug, msg, keysAndValues...)
}

func (s *StandardLogger) write(level LogLevel, msg string, keysAndValues ...interface{}) {
	if level < s.level {
		return
	}
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if s.structured {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level.String(),
			"service":   s.service,
			"message":   msg,
		}
		if len(keysAndValues) > 1 {
			fields := make(map[string]interface{}, len(keysAndValues)/2)
			for i := 0; i+1 < len(keysAndValues); i += 2 {
				if key, ok := keysAndValues[i].(string); ok {
					fields[key] = fmt.Sprintf("%v", keysAndValues[i+1])
				}
			}
			if len(fields) > 0 {
				entry["fields"] = fields
			}
		}
		line, _ := json.Marshal(entry)
		s.logger.Println(string(line))
		return
	}

	var kv strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		kv.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	s.logger.Printf("[%s] %s [%s] %s%s", timestamp, level.String(), s.service, msg, kv.String())
}

// NoOpLogger discards everything (for tests).
type NoOpLogger struct{}

func (NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}

// NewLogger builds the logger for the current environment. Level and output
// mode come from LOG_LEVEL and ENV.
func NewLogger(service string) Logger {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "test" {
		return NoOpLogger{}
	}

	logger := NewStandardLogger(service)
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		logger.SetLevel(LogLevelDebug)
	case "WARN":
		logger.SetLevel(LogLevelWarn)
	case "ERROR":
		logger.SetLevel(LogLevelError)
	}
	logger.SetStructured(env == "production")
	return logger
}
