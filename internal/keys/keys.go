// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// and are guaranteed to match the actual runtime values. Using these constants
// instead of hardcoded strings prevents typo bugs (e.g., "escape" vs "esc").
//
// Single-character keys like "o" and "c" are not included here because they
// are unambiguous and cannot be misspelled in a meaningful way.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter      = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                      // "enter"
	ShiftEnter = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}).String() // "shift+enter"
	AltEnter   = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}).String()   // "alt+enter"
	Escape     = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                     // "esc"
)

// Ctrl combinations
var (
	CtrlC    = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String()         // "ctrl+c"
	CtrlU    = (tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}).String()         // "ctrl+u"
	CtrlD    = (tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}).String()         // "ctrl+d"
	CtrlL    = (tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}).String()         // "ctrl+l"
	CtrlUp   = (tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModCtrl}).String()   // "ctrl+up"
	CtrlDown = (tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModCtrl}).String() // "ctrl+down"
)
