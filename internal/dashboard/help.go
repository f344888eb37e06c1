package dashboard

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the current focus,
// providing context-aware help bar content. A pending delete
// confirmation takes precedence over focus.
func HelpBindings(focus Focus, confirming bool) help.KeyMap {
	switch {
	case confirming:
		return ConfirmKeyMap()
	case focus == FocusList:
		return ListKeyMap()
	default:
		return FormKeyMap()
	}
}
