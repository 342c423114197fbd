package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/depfind/codebase"
)

func newLSPCmd(a *app) *cobra.Command {
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "lsp [root]...",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on stdin/stdout that answers workspace/symbol
requests from the class files under the given roots. Without roots the
workspace root sent by the editor is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := symbolStrategy(a.cfg.Symbols)
			if err != nil {
				return err
			}
			loader, err := a.newLoader()
			if err != nil {
				return err
			}

			c := codebase.New(loader, strategy, args...)
			return codebase.NewLSPServer(c, version, poll).RunStdio()
		},
	}

	cmd.Flags().DurationVar(&poll, "poll", 2*time.Second, "how often to check for changed class files (0 disables)")

	return cmd
}
