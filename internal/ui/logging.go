package ui

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	debugTag = color.New(color.FgCyan).Sprint("[DEBUG]")
	infoTag  = color.New(color.FgGreen).Sprint("[INFO]")
	errorTag = color.New(color.FgRed).Sprint("[ERROR]")
)

type Logger struct {
	Debug bool
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		fmt.Printf(debugTag+" "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	fmt.Printf(infoTag+" "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	fmt.Printf(errorTag+" "+format, args...)
}
