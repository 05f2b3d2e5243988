package app

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gowire/cmd"
	"github.com/philipparndt/gowire/pkg/viewer"
	"github.com/philipparndt/gowire/pkg/watcher"
)

// App is the raylib viewer shell around a session
type App struct {
	Session     *cmd.Session
	Focus       *viewer.FocusTracker
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	dragging     bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	fileWatcher *watcher.FileWatcher
	// set from the watcher goroutine, consumed on the main thread
	needsReload atomic.Bool
}

// UIState holds overlay state
type UIState struct {
	font       rl.Font
	focusText  string
	statusText string
	showHelp   bool
}
