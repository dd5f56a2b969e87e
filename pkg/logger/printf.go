package logger

import (
	"context"
	"fmt"
	"strings"
)

// PrintfLogger adapts a Logger to printf-style logging interfaces such as
// resty's. Errors from such libraries are already returned to the caller, so
// they are written at warn level; warnings are written at debug level.
type PrintfLogger struct {
	l Logger
}

// Printf wraps l. A nil l discards everything.
func Printf(l Logger) *PrintfLogger {
	if l == nil {
		l = Nop()
	}
	return &PrintfLogger{l: l}
}

func (p *PrintfLogger) Errorf(format string, v ...any) {
	p.l.Warn(context.Background(), line(format, v))
}

func (p *PrintfLogger) Warnf(format string, v ...any) {
	p.l.Debug(context.Background(), line(format, v))
}

func (p *PrintfLogger) Debugf(format string, v ...any) {
	p.l.Debug(context.Background(), line(format, v))
}

func line(format string, v []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
