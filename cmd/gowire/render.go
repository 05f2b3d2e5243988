package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowire/cmd"
	"github.com/philipparndt/gowire/pkg/scene"
	"github.com/philipparndt/gowire/pkg/viewer"
	"github.com/philipparndt/gowire/pkg/watcher"
)

var renderOpts struct {
	output string
	width  int
	height int
	labels bool
	watch  bool
}

var renderCmd = &cobra.Command{
	Use:   "render [scene]",
	Short: "Render a scene to a PNG image",
	Long:  "Render a scene with the configured camera. With --watch the image is rendered again whenever the scene file changes.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.output, "output", "o", "scene.png", "output PNG file")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", 0, "image width (default from config)")
	renderCmd.Flags().IntVar(&renderOpts.height, "height", 0, "image height (default from config)")
	renderCmd.Flags().BoolVar(&renderOpts.labels, "labels", false, "annotate primitives with their draw order")
	renderCmd.Flags().BoolVarP(&renderOpts.watch, "watch", "w", false, "re-render when the scene file changes")
	rootCmd.AddCommand(renderCmd)
}

func runRender(command *cobra.Command, args []string) error {
	session, err := flags.Open(scenePath(args))
	if err != nil {
		return err
	}
	width, height := viewportSize(session)
	if flags.Fit {
		session.Fit(width, height)
	}
	if renderOpts.labels {
		session.Viewer.SetDrawOrderLabels(true)
	}

	if err := renderToFile(session, width, height, renderOpts.output); err != nil {
		return err
	}
	fmt.Fprintf(command.OutOrStdout(), "Wrote %s (%dx%d)\n", renderOpts.output, width, height)

	if !renderOpts.watch {
		return nil
	}
	if session.Path == "" {
		return fmt.Errorf("--watch needs a scene file")
	}
	return watchAndRender(command, session, width, height)
}

func viewportSize(session *cmd.Session) (int, int) {
	width, height := session.Config.Render.Width, session.Config.Render.Height
	if renderOpts.width > 0 {
		width = renderOpts.width
	}
	if renderOpts.height > 0 {
		height = renderOpts.height
	}
	return width, height
}

func renderToFile(session *cmd.Session, width, height int, path string) error {
	canvas := viewer.NewImageCanvas(width, height)
	session.Viewer.Render(canvas, width, height)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := png.Encode(file, canvas.Image()); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

func watchAndRender(command *cobra.Command, session *cmd.Session, width, height int) error {
	fw, err := watcher.NewFileWatcher(200*time.Millisecond, session.Logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	files, err := scene.WatchFiles(session.Path)
	if err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	if err := fw.Watch(files, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go fw.Run(ctx)

	fmt.Fprintf(command.OutOrStdout(), "Watching %s, press Ctrl+C to stop\n", session.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			// keep the current view across reloads
			settings := session.Viewer.Camera.Settings()
			if err := session.Reload(); err != nil {
				session.Logger.Error("failed to reload scene", "path", session.Path, "error", err)
				continue
			}
			session.Viewer.Camera.Apply(settings)
			if err := renderToFile(session, width, height, renderOpts.output); err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "Wrote %s\n", renderOpts.output)
		}
	}
}
