package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/depfind/codebase"
)

func newSymbolsCmd(a *app) *cobra.Command {
	var showKinds bool

	cmd := &cobra.Command{
		Use:   "symbols <path>...",
		Short: "List class, field, method and local variable names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := symbolStrategy(a.cfg.Symbols)
			if err != nil {
				return err
			}
			loader, err := a.newLoader()
			if err != nil {
				return err
			}
			result, err := loader.Load(context.Background(), args...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, class := range result.Classes {
				for _, s := range codebase.GatherSymbols(class, strategy) {
					if showKinds {
						fmt.Fprintf(w, "%s\t%s\n", s.Kind, s.Name)
					} else {
						fmt.Fprintln(w, s.Name)
					}
				}
			}
			for _, e := range result.Errors {
				log.Warningf("%s", e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showKinds, "kinds", "k", false, "prefix each symbol with its kind")

	return cmd
}
