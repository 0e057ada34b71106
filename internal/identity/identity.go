// Package identity resolves and persists the operator's display name.
// Resolution blocks the rest of startup: every other component renders the
// name, so nothing runs until a non-empty one exists.
package identity

import (
	"strings"

	huh "charm.land/huh/v2"

	"github.com/hallway-chat/hallway/internal/config"
	"github.com/hallway-chat/hallway/internal/logger"
)

// PromptFunc asks the operator for a display name. It may return an empty
// string, in which case it is asked again.
type PromptFunc func() (string, error)

// Resolve returns the persisted display name, prompting until a non-empty
// value is supplied when none is stored. The resolved name is saved before
// returning. An empty response is not an error; the prompt simply repeats.
func Resolve(cfg *config.Config, prompt PromptFunc) (string, error) {
	if name := strings.TrimSpace(cfg.GetName()); name != "" {
		return name, nil
	}

	for {
		name, err := prompt()
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		cfg.SetName(name)
		if err := cfg.Save(); err != nil {
			return "", err
		}
		logger.Info("Identity: resolved name %q", name)
		return name, nil
	}
}

// Persist stores a server-corrected name. Unlike Resolve this never prompts;
// the bus is authoritative once connected.
func Persist(cfg *config.Config, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == cfg.GetName() {
		return nil
	}
	cfg.SetName(name)
	return cfg.Save()
}

// TerminalPrompt returns a PromptFunc backed by a huh input form.
func TerminalPrompt() PromptFunc {
	return func() (string, error) {
		var name string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Who are you?").
				Description("Pick the display name other people will see.").
				Value(&name),
		))
		if err := form.Run(); err != nil {
			return "", err
		}
		return name, nil
	}
}
