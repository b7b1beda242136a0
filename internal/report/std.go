package report

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// StdLogger writes events at or above Min through a standard library logger.
type StdLogger struct {
	Out *log.Logger
	Min Level
}

// NewStdLogger returns a StdLogger writing to w.
func NewStdLogger(w io.Writer, min Level) *StdLogger {
	return &StdLogger{Out: log.New(w, "modlayout: ", log.LstdFlags), Min: min}
}

func (l *StdLogger) Log(level Level, msg string, args ...any) {
	if level < l.Min {
		return
	}
	l.Out.Print(Format(level, msg, args...))
}

// Format renders an event as "[level] msg arg1 arg2".
func Format(level Level, msg string, args ...any) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(msg)
	for _, a := range args {
		b.WriteString(" ")
		fmt.Fprint(&b, a)
	}
	return b.String()
}
