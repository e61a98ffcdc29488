package notify

import (
	"github.com/gen2brain/beeep"

	logx "vocabpop/pkg/logx"
)

// DesktopSink shows a platform toast notification, falling back to a
// console surface when the platform mechanism fails.
type DesktopSink struct {
	log      logx.Logger
	fallback Sink

	// seam for tests; defaults to beeep.Notify
	notify func(title, message string, icon any) error
}

// NewDesktopSink builds a toast sink with the given fallback. A nil
// fallback gets a stdout console sink.
func NewDesktopSink(fallback Sink, log logx.Logger) *DesktopSink {
	if fallback == nil {
		fallback = NewConsoleSink(nil)
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &DesktopSink{
		log:      log,
		fallback: fallback,
		notify:   beeep.Notify,
	}
}

func (d *DesktopSink) Show(title, body string) {
	if err := d.notify(title, body, nil); err != nil {
		d.log.Warn("desktop notification failed; using console", logx.Err(err))
		d.fallback.Show(title, body)
	}
}
