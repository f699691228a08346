package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

func colorize(s interface{}, c int, disabled bool) string {
	if disabled {
		return fmt.Sprintf("%s", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// lockedWriter serializes writes so log lines from the server and the
// slideshow never interleave
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

var stdoutMu sync.Mutex

func (lw lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// InitializeLogger points the global zerolog logger at a colored console
// writer. Colors are skipped when NO_COLOR is set.
func InitializeLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	noColor := os.Getenv("NO_COLOR") != ""

	output := zerolog.ConsoleWriter{
		Out:        lockedWriter{mu: &stdoutMu, w: colorable.NewColorable(os.Stdout)},
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	output.FormatLevel = func(i interface{}) string {
		return fmt.Sprintf("| %s |", formatLevel(i, noColor))
	}

	log.Logger = log.Output(output)
}

func formatLevel(i interface{}, noColor bool) string {
	ll, ok := i.(string)
	if !ok {
		if i == nil {
			return colorize("???  ", colorBold, noColor)
		}
		return strings.ToUpper(fmt.Sprintf("%-5s", i))[0:5]
	}

	switch ll {
	case zerolog.LevelTraceValue:
		return colorize("TRACE", colorMagenta, noColor)
	case zerolog.LevelDebugValue:
		return colorize("DEBUG", colorYellow, noColor)
	case zerolog.LevelInfoValue:
		return colorize("INFO ", colorGreen, noColor)
	case zerolog.LevelWarnValue:
		return colorize("WARN ", colorRed, noColor)
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return colorize(colorize(strings.ToUpper(ll), colorRed, noColor), colorBold, noColor)
	default:
		return colorize(ll, colorBold, noColor)
	}
}

// LoggerMiddleware writes an access log line per request and turns handler
// panics into 500s. Adapted from https://github.com/ironstar-io/chizerolog
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("recover_info", rec).
						Bytes("debug_stack", debug.Stack()).
						Msg("HTTP endpoint panic")

					http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}

				logger.Info().
					Str("type", "access").
					Fields(map[string]interface{}{
						"remote_ip":  r.RemoteAddr,
						"url":        r.URL.Path,
						"method":     r.Method,
						"status":     ww.Status(),
						"latency_ms": float64(time.Since(start).Nanoseconds()) / 1000000.0,
						"bytes_out":  ww.BytesWritten(),
					}).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
