// Package obslog provides the small leveled-logging seam used by the
// baker and the trainers to report diagnostics that are handled
// locally rather than returned as errors: skipped impossible
// sequences, silent-state cycles accepted under WarnAndContinue, and
// per-iteration Baum-Welch progress. Zero-norm edge rows and Gamma-fit
// non-convergence are handled without a log record.
package obslog

import "github.com/rs/zerolog"

// Logger is the narrow interface the rest of gohmm depends on, so
// callers can plug in any zerolog.Logger (or NoOp) without the package
// depending on zerolog's full surface. args are alternating key/value
// pairs, mirroring the fluent builder's field-then-value shape.
type Logger interface {
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// zerologAdapter wraps a zerolog.Logger to satisfy Logger.
type zerologAdapter struct{ l zerolog.Logger }

func (a zerologAdapter) Warn(msg string, args ...any) { logEvent(a.l.Warn(), msg, args) }
func (a zerologAdapter) Info(msg string, args ...any) { logEvent(a.l.Info(), msg, args) }

func logEvent(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		if key == "" {
			key = "field"
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}

// New wraps the given zerolog.Logger.
func New(l zerolog.Logger) Logger {
	return zerologAdapter{l: l}
}

// noop discards every record; it is the default when a caller never
// configures a logger.
type noop struct{}

func (noop) Warn(string, ...any) {}
func (noop) Info(string, ...any) {}

// NoOp is a Logger that discards everything.
var NoOp Logger = noop{}
