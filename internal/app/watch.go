package app

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/gowire/pkg/scene"
	"github.com/philipparndt/gowire/pkg/watcher"
)

// setupFileWatcher flags a reload whenever the scene file changes. The
// reload itself happens on the main thread.
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500*time.Millisecond, app.Session.Logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	files, err := scene.WatchFiles(app.Session.Path)
	if err != nil {
		fw.Close()
		return err
	}

	if err := fw.Watch(files, func(string) {
		app.FileWatch.needsReload.Store(true)
	}); err != nil {
		fw.Close()
		return err
	}

	// Run returns once Close shuts the event channels
	go fw.Run(context.Background())
	app.FileWatch.fileWatcher = fw
	return nil
}
