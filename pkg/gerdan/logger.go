package gerdan

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger used by the pipeline and handed to the renderers.
// By default nothing is logged. Pass nil to go silent again.
//
// Levels:
//   - [slog.LevelDebug]: layout decisions, page counts, output sizes
//   - [slog.LevelWarn]: cleanup failures and text the PDF font cannot show
//
// Example:
//
//	gerdan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
