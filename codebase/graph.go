package codebase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/depfind/classfile"
	"github.com/dhamidi/depfind/dependency"
)

// BuildGraph records the dependencies of every class file in factory.
// Each class file gets its own collector; the factory keeps node creation
// and edge updates consistent between them.
func BuildGraph(ctx context.Context, factory *dependency.NodeFactory, classfiles []*classfile.Classfile, workers int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, cf := range classfiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cf.Accept(dependency.NewCodeDependencyCollector(factory))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Infof("dependency graph has %d packages, %d classes, %d features",
		len(factory.Packages()), len(factory.Classes()), len(factory.Features()))
	return nil
}
