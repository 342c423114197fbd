package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dhamidi/depfind/codebase"
	"github.com/dhamidi/depfind/dependency"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		scopeIncludes  []string
		scopeExcludes  []string
		filterIncludes []string
		filterExcludes []string
		indent         string
	)

	cmd := &cobra.Command{
		Use:   "graph <path>...",
		Short: "Print the package, class and feature dependency graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, filter := a.cfg.Scope, a.cfg.Filter
			flags := cmd.Flags()
			if flags.Changed("scope-includes") {
				scope.Includes = scopeIncludes
			}
			if flags.Changed("scope-excludes") {
				scope.Excludes = scopeExcludes
			}
			if flags.Changed("filter-includes") {
				filter.Includes = filterIncludes
			}
			if flags.Changed("filter-excludes") {
				filter.Excludes = filterExcludes
			}

			strategy, err := traversalStrategy(scope, filter)
			if err != nil {
				return err
			}
			loader, err := a.newLoader()
			if err != nil {
				return err
			}

			ctx := context.Background()
			result, err := loader.Load(ctx, args...)
			if err != nil {
				return err
			}
			for _, e := range result.Errors {
				log.Warningf("%s", e)
			}

			factory := dependency.NewNodeFactory()
			if err := codebase.BuildGraph(ctx, factory, result.Classfiles(), a.cfg.Loader.Workers); err != nil {
				return err
			}

			printer := dependency.NewTextPrinter(cmd.OutOrStdout())
			printer.SetIndent(indent)
			dependency.NewSelectiveVisitor(strategy, printer).TraverseNodes(dependency.Nodes(factory.Packages()))
			return printer.Err()
		},
	}

	cmd.Flags().StringSliceVar(&scopeIncludes, "scope-includes", nil, "regexps selecting the nodes to print")
	cmd.Flags().StringSliceVar(&scopeExcludes, "scope-excludes", nil, "regexps removing nodes from the printed scope")
	cmd.Flags().StringSliceVar(&filterIncludes, "filter-includes", nil, "regexps selecting the dependencies to print")
	cmd.Flags().StringSliceVar(&filterExcludes, "filter-excludes", nil, "regexps removing dependencies from the output")
	cmd.Flags().StringVar(&indent, "indent", "    ", "indentation per level")

	return cmd
}
