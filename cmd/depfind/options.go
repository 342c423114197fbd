package main

import (
	"github.com/dhamidi/depfind/classfile"
	"github.com/dhamidi/depfind/config"
	"github.com/dhamidi/depfind/dependency"
)

// symbolStrategy builds the gatherer strategy described by cfg. Patterns
// only wrap the per-kind switches when there are any.
func symbolStrategy(cfg config.SymbolsConfig) (classfile.SymbolGathererStrategy, error) {
	kinds := &classfile.DefaultSymbolGathererStrategy{
		ClassNames:      cfg.Classes,
		FieldNames:      cfg.Fields,
		MethodNames:     cfg.Methods,
		LocalNames:      cfg.LocalVariables,
		InnerClassNames: cfg.InnerClasses,
	}
	if len(cfg.Includes) == 0 && len(cfg.Excludes) == 0 {
		return kinds, nil
	}
	filtering, err := classfile.NewFilteringSymbolGathererStrategy(kinds, cfg.Includes, cfg.Excludes)
	if err != nil {
		return nil, err
	}
	return filtering, nil
}

func selectionCriteria(cfg config.SelectionConfig) (dependency.SelectionCriteria, error) {
	if len(cfg.Includes) == 0 && len(cfg.Excludes) == 0 {
		return dependency.ComprehensiveSelectionCriteria{}, nil
	}
	criteria, err := dependency.NewRegularExpressionSelectionCriteria(cfg.Includes, cfg.Excludes)
	if err != nil {
		return nil, err
	}
	criteria.Packages = cfg.Packages
	criteria.Classes = cfg.Classes
	criteria.Features = cfg.Features
	return criteria, nil
}

// traversalStrategy sorts whatever the scope and filter select.
func traversalStrategy(scope, filter config.SelectionConfig) (dependency.TraversalStrategy, error) {
	scopeCriteria, err := selectionCriteria(scope)
	if err != nil {
		return nil, err
	}
	filterCriteria, err := selectionCriteria(filter)
	if err != nil {
		return nil, err
	}
	return dependency.NewSortedTraversalStrategy(
		dependency.NewSelectiveTraversalStrategy(scopeCriteria, filterCriteria),
	), nil
}
