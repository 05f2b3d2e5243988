package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowire/version"
)

// NewViewerCommand builds the root command of an interactive viewer
// shell. run receives the opened session and blocks until the window
// closes.
func NewViewerCommand(use, short string, run func(*Session) error) *cobra.Command {
	var flags Flags
	command := &cobra.Command{
		Use:     use + " [scene]",
		Short:   short,
		Long:    short + ".\n\nOpens a .yaml scene or an .stl model, or the built-in cube when no file is given.",
		Args:    cobra.MaximumNArgs(1),
		Version: version.GetFullVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			session, err := flags.Open(path)
			if err != nil {
				return err
			}
			return run(session)
		},
		SilenceUsage: true,
	}
	flags.Register(command.PersistentFlags())
	return command
}

// Execute runs command and exits with status 1 on failure
func Execute(command *cobra.Command) {
	command.SilenceErrors = true
	if err := command.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
