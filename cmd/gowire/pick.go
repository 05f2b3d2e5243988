package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowire/pkg/viewer"
)

var pickOpts struct {
	x, y  int
	order bool
}

var pickCmd = &cobra.Command{
	Use:   "pick [scene]",
	Short: "Report what lies under a pixel",
	Long:  "Render a scene with the configured camera and viewport and print the nearest focusable point, edge or face under the given pixel.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPick,
}

func init() {
	pickCmd.Flags().IntVarP(&pickOpts.x, "x", "x", 0, "pixel column")
	pickCmd.Flags().IntVarP(&pickOpts.y, "y", "y", 0, "pixel row")
	pickCmd.Flags().BoolVar(&pickOpts.order, "order", false, "also list all primitives in draw order")
	rootCmd.AddCommand(pickCmd)
}

func runPick(command *cobra.Command, args []string) error {
	session, err := flags.Open(scenePath(args))
	if err != nil {
		return err
	}
	width, height := session.Config.Render.Width, session.Config.Render.Height
	session.Viewer.Render(viewer.NewImageCanvas(width, height), width, height)

	out := command.OutOrStdout()
	if pickOpts.order {
		fmt.Fprintln(out, "Draw order (farthest first):")
		for i, p := range session.Viewer.Buffer() {
			fmt.Fprintf(out, "  %3d  depth %10.4f  %s\n", i+1, p.Depth, session.Describe(p.Target))
		}
		fmt.Fprintln(out)
	}

	target, ok := session.Viewer.Pick(pickOpts.x, pickOpts.y)
	if !ok {
		fmt.Fprintf(out, "Nothing at (%d, %d)\n", pickOpts.x, pickOpts.y)
		return nil
	}
	fmt.Fprintf(out, "At (%d, %d): %s\n", pickOpts.x, pickOpts.y, session.Describe(target))
	return nil
}
