package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Format names accepted by SetFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// SimpleLogger provides a basic structured logger implementation
type SimpleLogger struct {
	level  LogLevel
	format string
	fields map[string]interface{}
	out    io.Writer
}

// New creates a new simple logger writing text to stderr at info level.
func New() *SimpleLogger {
	return &SimpleLogger{
		level:  InfoLevel,
		format: FormatText,
		fields: make(map[string]interface{}),
		out:    os.Stderr,
	}
}

// NewWithWriter creates a logger writing to the given writer, mainly
// for tests.
func NewWithWriter(out io.Writer) *SimpleLogger {
	l := New()
	l.out = out
	return l
}

// SetLevel sets the logging level
func (l *SimpleLogger) SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		l.level = DebugLevel
	case "INFO":
		l.level = InfoLevel
	case "WARN", "WARNING":
		l.level = WarnLevel
	case "ERROR":
		l.level = ErrorLevel
	}
}

// SetFormat selects the output format ("text" or "json").
func (l *SimpleLogger) SetFormat(format string) {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON:
		l.format = strings.ToLower(format)
	}
}

// WithFields returns a logger that includes the given fields on every
// line, on top of any fields already bound.
func (l *SimpleLogger) WithFields(fields map[string]interface{}) *SimpleLogger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &SimpleLogger{
		level:  l.level,
		format: l.format,
		fields: merged,
		out:    l.out,
	}
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	if l.level <= DebugLevel {
		l.log("DEBUG", msg, fields)
	}
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	if l.level <= InfoLevel {
		l.log("INFO", msg, fields)
	}
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	if l.level <= WarnLevel {
		l.log("WARN", msg, fields)
	}
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, fields map[string]interface{}) {
	if l.level <= ErrorLevel {
		l.log("ERROR", msg, fields)
	}
}

func (l *SimpleLogger) log(level, msg string, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	if l.format == FormatJSON {
		entry := make(map[string]interface{}, len(merged)+3)
		for k, v := range merged {
			entry[k] = v
		}
		entry["time"] = time.Now().Format(time.RFC3339)
		entry["level"] = level
		entry["msg"] = msg
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, `{"level":%q,"msg":%q,"marshal_error":%q}`+"\n", level, msg, err.Error())
			return
		}
		fmt.Fprintln(l.out, string(data))
		return
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", time.Now().Format(time.RFC3339), level, msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, merged[k])
	}
	fmt.Fprintln(l.out, b.String())
}
