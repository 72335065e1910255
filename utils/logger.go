package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Logger provides leveled, timestamped logging. Everything writes to stderr
// so stdout stays clean for prompts and the final report.
type Logger struct {
	out     *log.Logger
	debugOn bool
}

// NewLogger creates a Logger. Debug output is off unless the LOG_DEBUG
// environment variable is set to a non-empty value.
func NewLogger() *Logger {
	return &Logger{
		out:     log.New(os.Stderr, "", 0),
		debugOn: os.Getenv("LOG_DEBUG") != "",
	}
}

func (l *Logger) print(level, format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.out.Printf(fmt.Sprintf("[%s] %s %s", ts, level, format), args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.print("\033[32mINFO\033[0m ", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.print("\033[33mWARN\033[0m ", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.print("\033[31mERROR\033[0m", format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debugOn {
		return
	}
	l.print("\033[36mDEBUG\033[0m", format, args...)
}
