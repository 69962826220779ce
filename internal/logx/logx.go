// Package logx is the driver core's ambient logging package: a thin
// stdlib-log wrapper with a package-level enable/disable switch, in the
// same shape the rest of the codebase uses for non-HTTP-request logging.
package logx

import (
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	disabled = false
	logger   = log.New(os.Stderr, "[driver] ", log.LstdFlags)
)

// Disable turns off all logging.
func Disable() { disabled = true }

// Enable turns logging back on.
func Enable() { disabled = false }

func Info(v ...any) {
	if !disabled {
		logger.Println(v...)
	}
}

func Infof(format string, v ...any) {
	if !disabled {
		logger.Printf(format, v...)
	}
}

func Warn(v ...any) {
	if !disabled {
		logger.Println(v...)
	}
}

func Warnf(format string, v ...any) {
	if !disabled {
		logger.Printf(format, v...)
	}
}

func Error(v ...any) {
	if !disabled {
		logger.Println(v...)
	}
}

func Errorf(format string, v ...any) {
	if !disabled {
		logger.Printf(format, v...)
	}
}

func Debug(v ...any) {
	if !disabled {
		logger.Println(v...)
	}
}

func Debugf(format string, v ...any) {
	if !disabled {
		logger.Printf(format, v...)
	}
}

// Fields renders a set of key/value pairs as a single "k=v k=v" string
// suitable for appending to a log line, the cheapest structured-logging
// shape that still greps well.
func Fields(kv ...any) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(toString(kv[i]))
		b.WriteByte('=')
		b.WriteString(toString(kv[i+1]))
	}
	return b.String()
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
