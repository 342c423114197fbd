package codebase

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/depfind/classfile"
	"github.com/dhamidi/depfind/dependency"
)

type SymbolKind int

const (
	SymbolKindClass SymbolKind = iota
	SymbolKindField
	SymbolKindMethod
	SymbolKindConstructor
	SymbolKindLocalVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolKindClass:
		return "class"
	case SymbolKindField:
		return "field"
	case SymbolKindMethod:
		return "method"
	case SymbolKindConstructor:
		return "constructor"
	case SymbolKindLocalVariable:
		return "local"
	default:
		return "unknown"
	}
}

// Symbol is one name produced by a SymbolGatherer, classified by kind.
// Container is the enclosing class, or the enclosing method for local
// variables.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Container string
	Source    string
}

// Codebase keeps the class files found under a set of roots and the
// symbols gathered from them. Reload refreshes both.
type Codebase struct {
	mu       sync.RWMutex
	roots    []string
	loader   *Loader
	strategy classfile.SymbolGathererStrategy
	classes  []ClassSource
	errors   []*LoadError
	symbols  []Symbol
}

func New(loader *Loader, strategy classfile.SymbolGathererStrategy, roots ...string) *Codebase {
	return &Codebase{
		roots:    roots,
		loader:   loader,
		strategy: strategy,
	}
}

func (c *Codebase) Roots() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.roots)
}

// SetRoots replaces the roots; the next Reload uses them.
func (c *Codebase) SetRoots(roots ...string) {
	c.mu.Lock()
	c.roots = roots
	c.mu.Unlock()
}

func (c *Codebase) Reload(ctx context.Context) error {
	result, err := c.loader.Load(ctx, c.Roots()...)
	if err != nil {
		return err
	}

	var symbols []Symbol
	for _, class := range result.Classes {
		symbols = append(symbols, GatherSymbols(class, c.strategy)...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes = result.Classes
	c.errors = result.Errors
	c.symbols = symbols
	return nil
}

func (c *Codebase) Classes() []ClassSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.classes
}

func (c *Codebase) Errors() []*LoadError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errors
}

func (c *Codebase) Symbols() []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.symbols
}

// FindClass looks a class up by its source-form name.
func (c *Codebase) FindClass(name string) *classfile.Classfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, class := range c.classes {
		if class.Classfile.ClassName() == name {
			return class.Classfile
		}
	}
	return nil
}

// Search returns up to limit symbols whose name contains query, ignoring
// case. An empty query matches everything.
func (c *Codebase) Search(query string, limit int) []Symbol {
	query = strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Symbol
	for _, s := range c.symbols {
		if limit > 0 && len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(s.Name), query) {
			out = append(out, s)
		}
	}
	return out
}

// GatherSymbols runs a SymbolGatherer over one class file and classifies
// what it finds.
func GatherSymbols(class ClassSource, strategy classfile.SymbolGathererStrategy) []Symbol {
	gatherer := classfile.NewSymbolGatherer(strategy)
	class.Classfile.Accept(gatherer)

	cf := class.Classfile
	constructorPrefix := cf.ClassName() + "." + cf.SimpleName() + "("

	var symbols []Symbol
	for name := range gatherer.All() {
		s := Symbol{Name: name, Source: class.Source}
		switch {
		case name == cf.ClassName():
			s.Kind = SymbolKindClass
			s.Container = cf.PackageName()
		case strings.Contains(name, ": "):
			s.Kind = SymbolKindLocalVariable
			s.Container = name[:strings.Index(name, ": ")]
		case strings.HasPrefix(name, constructorPrefix):
			s.Kind = SymbolKindConstructor
			s.Container = cf.ClassName()
		case strings.HasSuffix(name, ")"), strings.HasSuffix(name, "static {}"):
			s.Kind = SymbolKindMethod
			s.Container = dependency.FeatureClassName(name)
		default:
			s.Kind = SymbolKindField
			s.Container = dependency.FeatureClassName(name)
		}
		symbols = append(symbols, s)
	}
	return symbols
}
