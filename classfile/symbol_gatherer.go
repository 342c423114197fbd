package classfile

import (
	"iter"
	"regexp"
	"slices"
)

// SymbolGathererStrategy decides which symbols a SymbolGatherer records.
type SymbolGathererStrategy interface {
	IsMatchingClassfile(cf *Classfile) bool
	IsMatchingField(field *FieldInfo) bool
	IsMatchingMethod(method *MethodInfo) bool
	IsMatchingLocalVariable(local *LocalVariable) bool
	IsMatchingInnerClass(inner *InnerClass) bool
	LocateMethodFor(local *LocalVariable) *MethodInfo
	LocateClassfileFor(inner *InnerClass) *Classfile
}

// SymbolGatherer collects the names of classes, features and local
// variables in visitation order.
type SymbolGatherer struct {
	VisitorBase
	strategy   SymbolGathererStrategy
	symbols    []string
	innerClass *InnerClass
}

func NewSymbolGatherer(strategy SymbolGathererStrategy) *SymbolGatherer {
	g := &SymbolGatherer{strategy: strategy}
	g.Bind(g)
	return g
}

// All yields the symbols gathered so far.
func (g *SymbolGatherer) All() iter.Seq[string] {
	return slices.Values(g.symbols)
}

func (g *SymbolGatherer) Symbols() []string {
	return slices.Clone(g.symbols)
}

// VisitClassfile records the class under its own name, or under its
// InnerClasses name when the class describes itself as an inner class. The
// name is decided after the members are walked but is listed before them.
func (g *SymbolGatherer) VisitClassfile(cf *Classfile) {
	g.innerClass = nil
	slot := len(g.symbols)
	g.symbols = append(g.symbols, "")

	g.VisitorBase.VisitClassfile(cf)

	switch {
	case g.innerClass != nil && g.strategy.IsMatchingInnerClass(g.innerClass):
		g.symbols[slot] = g.innerClass.InnerClassName()
	case g.innerClass == nil && g.strategy.IsMatchingClassfile(cf):
		g.symbols[slot] = cf.ClassName()
	default:
		g.symbols = slices.Delete(g.symbols, slot, slot+1)
	}
}

func (g *SymbolGatherer) VisitField(field *FieldInfo) {
	if g.strategy.IsMatchingField(field) {
		g.symbols = append(g.symbols, field.FullSignature())
	}
	g.VisitorBase.VisitField(field)
}

func (g *SymbolGatherer) VisitMethod(method *MethodInfo) {
	if g.strategy.IsMatchingMethod(method) {
		g.symbols = append(g.symbols, method.FullSignature())
	}
	g.VisitorBase.VisitMethod(method)
}

// VisitLocalVariable skips tables that sit outside a Code attribute, since
// they have no enclosing method to name the variable by.
func (g *SymbolGatherer) VisitLocalVariable(local *LocalVariable) {
	if !g.strategy.IsMatchingLocalVariable(local) {
		return
	}
	if method := g.strategy.LocateMethodFor(local); method != nil {
		g.symbols = append(g.symbols, method.FullSignature()+": "+local.Name)
	}
}

func (g *SymbolGatherer) VisitInnerClass(inner *InnerClass) {
	if cf := g.strategy.LocateClassfileFor(inner); cf != nil && cf.RawClass() == inner.InnerClassInfoIndex {
		g.innerClass = inner
	}
}

// DefaultSymbolGathererStrategy matches whole symbol kinds.
type DefaultSymbolGathererStrategy struct {
	ClassNames      bool
	FieldNames      bool
	MethodNames     bool
	LocalNames      bool
	InnerClassNames bool
}

// NewDefaultSymbolGathererStrategy matches every kind of symbol.
func NewDefaultSymbolGathererStrategy() *DefaultSymbolGathererStrategy {
	return &DefaultSymbolGathererStrategy{
		ClassNames:      true,
		FieldNames:      true,
		MethodNames:     true,
		LocalNames:      true,
		InnerClassNames: true,
	}
}

func (s *DefaultSymbolGathererStrategy) IsMatchingClassfile(*Classfile) bool { return s.ClassNames }
func (s *DefaultSymbolGathererStrategy) IsMatchingField(*FieldInfo) bool     { return s.FieldNames }
func (s *DefaultSymbolGathererStrategy) IsMatchingMethod(*MethodInfo) bool   { return s.MethodNames }
func (s *DefaultSymbolGathererStrategy) IsMatchingLocalVariable(*LocalVariable) bool {
	return s.LocalNames
}
func (s *DefaultSymbolGathererStrategy) IsMatchingInnerClass(*InnerClass) bool {
	return s.InnerClassNames
}

func (s *DefaultSymbolGathererStrategy) LocateMethodFor(local *LocalVariable) *MethodInfo {
	return local.Method()
}

func (s *DefaultSymbolGathererStrategy) LocateClassfileFor(inner *InnerClass) *Classfile {
	return inner.Classfile()
}

// FilteringSymbolGathererStrategy narrows another strategy with include and
// exclude patterns over the symbol's name. An empty include list includes
// everything.
type FilteringSymbolGathererStrategy struct {
	delegate SymbolGathererStrategy
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

func NewFilteringSymbolGathererStrategy(delegate SymbolGathererStrategy, includes, excludes []string) (*FilteringSymbolGathererStrategy, error) {
	s := &FilteringSymbolGathererStrategy{delegate: delegate}
	var err error
	if s.includes, err = compilePatterns(includes); err != nil {
		return nil, err
	}
	if s.excludes, err = compilePatterns(excludes); err != nil {
		return nil, err
	}
	return s, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func (s *FilteringSymbolGathererStrategy) matches(name string) bool {
	included := len(s.includes) == 0
	for _, re := range s.includes {
		if re.MatchString(name) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, re := range s.excludes {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}

func (s *FilteringSymbolGathererStrategy) IsMatchingClassfile(cf *Classfile) bool {
	return s.delegate.IsMatchingClassfile(cf) && s.matches(cf.ClassName())
}

func (s *FilteringSymbolGathererStrategy) IsMatchingField(field *FieldInfo) bool {
	return s.delegate.IsMatchingField(field) && s.matches(field.FullSignature())
}

func (s *FilteringSymbolGathererStrategy) IsMatchingMethod(method *MethodInfo) bool {
	return s.delegate.IsMatchingMethod(method) && s.matches(method.FullSignature())
}

func (s *FilteringSymbolGathererStrategy) IsMatchingLocalVariable(local *LocalVariable) bool {
	return s.delegate.IsMatchingLocalVariable(local) && s.matches(local.Name)
}

func (s *FilteringSymbolGathererStrategy) IsMatchingInnerClass(inner *InnerClass) bool {
	return s.delegate.IsMatchingInnerClass(inner) && s.matches(inner.InnerClassName())
}

func (s *FilteringSymbolGathererStrategy) LocateMethodFor(local *LocalVariable) *MethodInfo {
	return s.delegate.LocateMethodFor(local)
}

func (s *FilteringSymbolGathererStrategy) LocateClassfileFor(inner *InnerClass) *Classfile {
	return s.delegate.LocateClassfileFor(inner)
}
