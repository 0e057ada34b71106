// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/mattn/go-runewidth"

	"github.com/hallway-chat/hallway/internal/logger"
)

const maxBodyWidth = 120

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: title=%q, message=%q", title, message)
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// Mention notifies about a chat message the server flagged for attention.
func Mention(from, body string) error {
	return Send("hallway: "+from, truncateBody(body))
}

// truncateBody shortens long bodies so the notification stays readable. The
// cut is rune aware so multibyte text never splits mid sequence.
func truncateBody(body string) string {
	return runewidth.Truncate(body, maxBodyWidth, "...")
}
