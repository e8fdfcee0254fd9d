package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

type Fields map[string]interface{}

var (
	mu  sync.Mutex
	out = log.New(os.Stderr, "", 0)
)

// SetOutput redirects every log line to w. Tests use it to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = log.New(w, "", 0)
}

func output(level, msg string, fields Fields) {
	line := Fields{}
	for k, v := range fields {
		line[k] = v
	}
	line["level"] = level
	line["ts"] = time.Now().UTC().Format(time.RFC3339)
	line["msg"] = msg

	mu.Lock()
	defer mu.Unlock()
	b, err := json.Marshal(line)
	if err != nil {
		out.Printf("%s: %s (%v)", level, msg, fields)
		return
	}
	out.Println(string(b))
}

func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}
	f := Fields{}
	for k, v := range fields {
		f[k] = v
	}
	f["error"] = err.Error()
	return f
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Warn logs a recoverable problem, such as a rejected request.
func Warn(msg string, fields Fields) {
	output("warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, withError(fields, err))
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(fields, err))
	os.Exit(1)
}

// Logger stamps a fixed set of fields onto every line it writes.
type Logger struct {
	base Fields
}

// With returns a Logger whose lines always carry fields.
func With(fields Fields) Logger {
	return Logger{base: fields}
}

func (l Logger) merge(fields Fields) Fields {
	f := Fields{}
	for k, v := range l.base {
		f[k] = v
	}
	for k, v := range fields {
		f[k] = v
	}
	return f
}

func (l Logger) Info(msg string, fields Fields) { Info(msg, l.merge(fields)) }

func (l Logger) Warn(msg string, fields Fields) { Warn(msg, l.merge(fields)) }

func (l Logger) Error(msg string, err error, fields Fields) { Error(msg, err, l.merge(fields)) }
