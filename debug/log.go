package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sinclairzx81/statebox/value"

	"github.com/rs/zerolog"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).With().Timestamp().Str("app", "statebox").Logger()
}

// SetOutput redirects debug output to w.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// Log returns the debug logger for structured events.
func Log() *zerolog.Logger {
	return &logger
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *value.Value:
			d, err := json.Marshal(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw value] %v", x.Interface())
				continue
			}
			args[i] = string(d)
		case map[string]any, []any:
			d, err := json.Marshal(x)
			if err != nil {
				continue
			}
			args[i] = string(d)
		}
	}
	logger.Debug().Msg(strings.TrimRight(fmt.Sprintf(msg, args...), "\n"))
}
