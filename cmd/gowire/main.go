package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gowire/cmd"
	"github.com/philipparndt/gowire/version"
)

var flags cmd.Flags

var rootCmd = &cobra.Command{
	Use:   "gowire",
	Short: "Wireframe scene renderer and picker",
	Long: `gowire renders meshes of points, edges and faces with a painter's algorithm.
Scenes are read from YAML scene files, STL models or OpenSCAD sources (the
openscad binary must be on PATH); without a file the
built-in cube is used.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
}

func init() {
	flags.Register(rootCmd.PersistentFlags())
}

func main() {
	cmd.Execute(rootCmd)
}

// scenePath returns the optional scene argument
func scenePath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
