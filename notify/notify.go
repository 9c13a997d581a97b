// Package notify sends desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appTitle = "Holdspeak"

// Notify shows a desktop notification. Failures are logged, never fatal;
// a missing notification daemon must not break a dictation cycle.
func Notify(title, body string) {
	if title == "" {
		title = appTitle
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		slog.Warn("send notification", "error", err)
	}
}
