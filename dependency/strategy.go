package dependency

import (
	"regexp"
	"slices"
)

// TraversalStrategy decides which nodes a SelectiveVisitor descends into
// (scope), which edges it follows (filter) and in which order batches of
// nodes are handed on.
type TraversalStrategy interface {
	IsInScope(node Node) bool
	IsInFilter(node Node) bool
	Order(nodes []Node) []Node
}

// ComprehensiveTraversalStrategy accepts every node and keeps input order.
type ComprehensiveTraversalStrategy struct{}

func (ComprehensiveTraversalStrategy) IsInScope(Node) bool       { return true }
func (ComprehensiveTraversalStrategy) IsInFilter(Node) bool      { return true }
func (ComprehensiveTraversalStrategy) Order(nodes []Node) []Node { return nodes }

// SelectionCriteria is a predicate over graph nodes.
type SelectionCriteria interface {
	Matches(node Node) bool
}

// ComprehensiveSelectionCriteria matches every node.
type ComprehensiveSelectionCriteria struct{}

func (ComprehensiveSelectionCriteria) Matches(Node) bool { return true }

// RegularExpressionSelectionCriteria matches nodes by name. The kind
// switches say which node kinds the patterns apply to; nodes of the other
// kinds always match so that traversal can pass through them.
type RegularExpressionSelectionCriteria struct {
	Packages bool
	Classes  bool
	Features bool

	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

// NewRegularExpressionSelectionCriteria compiles the patterns and applies
// them to every node kind. An empty include list includes everything.
func NewRegularExpressionSelectionCriteria(includes, excludes []string) (*RegularExpressionSelectionCriteria, error) {
	c := &RegularExpressionSelectionCriteria{Packages: true, Classes: true, Features: true}
	var err error
	if c.includes, err = compile(includes); err != nil {
		return nil, err
	}
	if c.excludes, err = compile(excludes); err != nil {
		return nil, err
	}
	return c, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Err: err}
		}
		out = append(out, re)
	}
	return out, nil
}

func (c *RegularExpressionSelectionCriteria) Matches(node Node) bool {
	switch node.(type) {
	case *PackageNode:
		if !c.Packages {
			return true
		}
	case *ClassNode:
		if !c.Classes {
			return true
		}
	case *FeatureNode:
		if !c.Features {
			return true
		}
	}
	return c.matchesName(node.Name())
}

func (c *RegularExpressionSelectionCriteria) matchesName(name string) bool {
	if len(c.includes) > 0 && !slices.ContainsFunc(c.includes, func(re *regexp.Regexp) bool {
		return re.MatchString(name)
	}) {
		return false
	}
	return !slices.ContainsFunc(c.excludes, func(re *regexp.Regexp) bool {
		return re.MatchString(name)
	})
}

// SelectiveTraversalStrategy uses one set of criteria for scope and
// another for the filter. Order is left unchanged.
type SelectiveTraversalStrategy struct {
	Scope  SelectionCriteria
	Filter SelectionCriteria
}

func NewSelectiveTraversalStrategy(scope, filter SelectionCriteria) *SelectiveTraversalStrategy {
	return &SelectiveTraversalStrategy{Scope: scope, Filter: filter}
}

func (s *SelectiveTraversalStrategy) IsInScope(node Node) bool  { return s.Scope.Matches(node) }
func (s *SelectiveTraversalStrategy) IsInFilter(node Node) bool { return s.Filter.Matches(node) }
func (s *SelectiveTraversalStrategy) Order(nodes []Node) []Node { return nodes }

// SortedTraversalStrategy orders another strategy's output by name.
type SortedTraversalStrategy struct {
	strategy TraversalStrategy
}

func NewSortedTraversalStrategy(strategy TraversalStrategy) *SortedTraversalStrategy {
	return &SortedTraversalStrategy{strategy: strategy}
}

func (s *SortedTraversalStrategy) IsInScope(node Node) bool  { return s.strategy.IsInScope(node) }
func (s *SortedTraversalStrategy) IsInFilter(node Node) bool { return s.strategy.IsInFilter(node) }

func (s *SortedTraversalStrategy) Order(nodes []Node) []Node {
	sorted := slices.Clone(s.strategy.Order(nodes))
	SortByName(sorted)
	return sorted
}
