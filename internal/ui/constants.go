// Package ui provides the presentation components for the hallway client.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// StatusHeight is the height of the status bar in lines
	StatusHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// RosterWidthRatio is the denominator for roster width (1/4 of total width)
	RosterWidthRatio = 4

	// TextareaHeight is the number of lines for the compose textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Timing constants
const (
	// FlashDuration is how long a flash notice stays visible in the status bar
	FlashDuration = 5 * time.Second

	// StatusTickInterval drives status bar re-renders so flash expiry shows
	// without new events
	StatusTickInterval = time.Second

	// FollowTickInterval coalesces scroll position checks during bursts of
	// content growth
	FollowTickInterval = 100 * time.Millisecond

	// UploadTickInterval drives the animated ellipsis while an upload is in
	// flight
	UploadTickInterval = 300 * time.Millisecond
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
