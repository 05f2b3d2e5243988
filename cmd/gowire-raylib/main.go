package main

import (
	"github.com/philipparndt/gowire/cmd"
	"github.com/philipparndt/gowire/internal/app"
)

func main() {
	cmd.Execute(cmd.NewViewerCommand("gowire-raylib", "Interactive scene viewer using raylib", app.Run))
}
