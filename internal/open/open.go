// Package open launches URLs in the user's default browser.
package open

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/hallway-chat/hallway/internal/logger"
)

// URL opens the given URL with the platform's default handler.
func URL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	logger.Debug("Open: launching %q", url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open URL: %w", err)
	}
	return nil
}
