package viewer

import "github.com/veandco/go-sdl2/sdl"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionWidthUp
	ActionWidthDown
	ActionHeightUp
	ActionHeightDown
	ActionDepthUp
	ActionDepthDown
	ActionToggleMode
	ActionToggleVertexMode
	ActionToggleUVMode
	ActionToggleBounds
	ActionToggleSpin
	ActionResetCamera
	ActionScreenshot
)

var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE:   ActionQuit,
	sdl.SCANCODE_RIGHT:    ActionWidthUp,
	sdl.SCANCODE_LEFT:     ActionWidthDown,
	sdl.SCANCODE_UP:       ActionHeightUp,
	sdl.SCANCODE_DOWN:     ActionHeightDown,
	sdl.SCANCODE_PAGEUP:   ActionDepthUp,
	sdl.SCANCODE_PAGEDOWN: ActionDepthDown,
	sdl.SCANCODE_TAB:      ActionToggleMode,
	sdl.SCANCODE_V:        ActionToggleVertexMode,
	sdl.SCANCODE_U:        ActionToggleUVMode,
	sdl.SCANCODE_B:        ActionToggleBounds,
	sdl.SCANCODE_SPACE:    ActionToggleSpin,
	sdl.SCANCODE_HOME:     ActionResetCamera,
	sdl.SCANCODE_F12:      ActionScreenshot,
}

// ActionForKey returns the action bound to a key, or ActionNone.
func ActionForKey(key sdl.Scancode) Action {
	return keyBindings[key]
}

// repeatable reports whether holding the key should repeat the action.
func (a Action) repeatable() bool {
	switch a {
	case ActionWidthUp, ActionWidthDown, ActionHeightUp, ActionHeightDown, ActionDepthUp, ActionDepthDown:
		return true
	}
	return false
}
