// Package logger provides leveled, component-scoped logging for the gofer
// gateway. Output goes to stderr and, when configured, to a log file under
// the workspace directory.
package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var (
	mu       sync.Mutex
	minLevel = INFO
	logFile  *os.File
)

// SetLevel sets the minimum level that will be emitted.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetLogFile opens path for appending and mirrors all log output to it.
func SetLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

func emit(l Level, component, msg string, fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLevel {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(" [")
	b.WriteString(levelNames[l])
	b.WriteString("] [")
	b.WriteString(component)
	b.WriteString("] ")
	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}
	b.WriteByte('\n')

	line := b.String()
	os.Stderr.WriteString(line)
	if logFile != nil {
		logFile.WriteString(line)
	}
}

func DebugC(component, msg string)                    { emit(DEBUG, component, msg, nil) }
func DebugCF(component, msg string, f map[string]any) { emit(DEBUG, component, msg, f) }
func InfoC(component, msg string)                     { emit(INFO, component, msg, nil) }
func InfoCF(component, msg string, f map[string]any)  { emit(INFO, component, msg, f) }
func WarnC(component, msg string)                     { emit(WARN, component, msg, nil) }
func WarnCF(component, msg string, f map[string]any)  { emit(WARN, component, msg, f) }
func ErrorC(component, msg string)                    { emit(ERROR, component, msg, nil) }
func ErrorCF(component, msg string, f map[string]any) { emit(ERROR, component, msg, f) }
