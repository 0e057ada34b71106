package ui

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/hallway-chat/hallway/internal/bus"
)

// linkRE matches bare scheme://nonspace URLs in a message body
var linkRE = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s]+`)

// imageExtensions are the raster formats shown as preview links instead of
// plain links
var imageExtensions = []string{".jpg", ".jpeg", ".gif", ".png", ".bmp"}

// Link is a URL extracted from a rendered message, addressable by its
// number in the log
type Link struct {
	URL   string
	Image bool
}

// sanitizeBody strips escape sequences and control characters so arbitrary
// message text can never drive the terminal. Newlines and tabs survive,
// everything else unprintable is dropped.
func sanitizeBody(body string) string {
	body = ansi.Strip(body)
	var sb strings.Builder
	sb.Grow(len(body))
	for _, r := range body {
		switch {
		case r == '\n':
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteRune(' ')
		case unicode.IsControl(r):
			// dropped
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// isImageURL reports whether the URL's path ends in a raster-image extension
func isImageURL(raw string) bool {
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// extractLinks returns the URLs found in an already-sanitized body, in order
func extractLinks(body string) []Link {
	var links []Link
	for _, m := range linkRE.FindAllString(body, -1) {
		links = append(links, Link{URL: m, Image: isImageURL(m)})
	}
	return links
}

// renderMessage converts one received message into its rendered block.
// startIndex is the number of links already in the log, so link markers
// stay unique across the whole conversation. Each call produces exactly one
// block; blocks are never re-rendered or removed.
func renderMessage(msg bus.Message, self string, width int, startIndex int) (string, []Link) {
	body := sanitizeBody(msg.Body)
	links := extractLinks(body)

	n := startIndex
	body = linkRE.ReplaceAllStringFunc(body, func(raw string) string {
		n++
		marker := fmt.Sprintf("[%d]", n)
		if isImageURL(raw) {
			return ChatImageStyle.Render("🖼 "+raw) + " " + ChatLinkStyle.Render(marker)
		}
		return ChatLinkStyle.Render(raw) + " " + ChatLinkStyle.Render(marker)
	})

	senderStyle := ChatPeerStyle
	sender := msg.From
	if msg.From == self {
		senderStyle = ChatSelfStyle
		sender += " (you)"
	}

	header := senderStyle.Render(sender)
	if !msg.Stamp.IsZero() {
		header += " " + ChatStampStyle.Render(msg.Stamp.Format("15:04"))
	}

	if width > 0 {
		body = ansi.Wrap(body, width, "")
	}

	return header + "\n" + body, links
}
