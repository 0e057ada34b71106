// Package clipboard wraps system clipboard access.
package clipboard

import (
	"sync"

	xclipboard "golang.design/x/clipboard"

	"github.com/hallway-chat/hallway/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// Copy writes text to the system clipboard.
func Copy(text string) error {
	initOnce.Do(func() {
		initErr = xclipboard.Init()
	})
	if initErr != nil {
		logger.Warn("Clipboard: init failed: %v", initErr)
		return initErr
	}
	xclipboard.Write(xclipboard.FmtText, []byte(text))
	return nil
}
