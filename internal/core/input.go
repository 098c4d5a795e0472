package core

// Action represents a semantic host action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionTap            // Space, Enter, mouse click on the button
	ActionSuspend        // Ctrl+Z - interrupt the session and keep a snapshot
	ActionHelp           // ? - toggle the full help view
	ActionScreenshot     // Ctrl+S - dump the screen to a text file
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTap:
		return "Tap"
	case ActionSuspend:
		return "Suspend"
	case ActionHelp:
		return "Help"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
