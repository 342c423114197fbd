package dependency

import (
	"strings"
	"sync"

	"github.com/dhamidi/depfind/classfile"
)

// NodeFactory is the graph's symbol table: asking for the same name twice
// returns the same node. Safe for concurrent use.
type NodeFactory struct {
	mu       sync.Mutex
	packages map[string]*PackageNode
	classes  map[string]*ClassNode
	features map[string]*FeatureNode
}

func NewNodeFactory() *NodeFactory {
	return &NodeFactory{
		packages: make(map[string]*PackageNode),
		classes:  make(map[string]*ClassNode),
		features: make(map[string]*FeatureNode),
	}
}

// CreatePackage returns the package called name, creating it if needed. A
// confirmed package was seen in parsed input rather than only referenced.
func (f *NodeFactory) CreatePackage(name string, confirmed bool) *PackageNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createPackageLocked(name, confirmed)
}

func (f *NodeFactory) createPackageLocked(name string, confirmed bool) *PackageNode {
	p, ok := f.packages[name]
	if !ok {
		p = newPackageNode(name)
		f.packages[name] = p
	}
	if confirmed {
		p.confirmed.Store(true)
	}
	return p
}

// CreateClass returns the class with the given source-form name, creating
// it and its package if needed.
func (f *NodeFactory) CreateClass(name string, confirmed bool) *ClassNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createClassLocked(name, confirmed)
}

func (f *NodeFactory) createClassLocked(name string, confirmed bool) *ClassNode {
	c, ok := f.classes[name]
	if !ok {
		pkg := f.createPackageLocked(classfile.PackageName(name), false)
		c = newClassNode(pkg, name)
		pkg.addClass(c)
		f.classes[name] = c
	}
	if confirmed {
		c.confirmed.Store(true)
		c.pkg.confirmed.Store(true)
	}
	return c
}

// CreateFeature returns the field or method with the given full name,
// creating its class and package if needed.
func (f *NodeFactory) CreateFeature(name string, confirmed bool) *FeatureNode {
	f.mu.Lock()
	defer f.mu.Unlock()

	ft, ok := f.features[name]
	if !ok {
		class := f.createClassLocked(FeatureClassName(name), false)
		ft = newFeatureNode(class, name)
		class.addFeature(ft)
		f.features[name] = ft
	}
	if confirmed {
		ft.confirmed.Store(true)
		ft.class.confirmed.Store(true)
		ft.class.pkg.confirmed.Store(true)
	}
	return ft
}

// FeatureClassName returns the class part of a feature name. Parameter
// lists may contain dots, so only the part before "(" is searched.
func FeatureClassName(feature string) string {
	head := feature
	if i := strings.IndexByte(head, '('); i != -1 {
		head = head[:i]
	}
	if i := strings.LastIndexByte(head, '.'); i != -1 {
		return feature[:i]
	}
	return ""
}

func (f *NodeFactory) Package(name string) *PackageNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.packages[name]
}

func (f *NodeFactory) Class(name string) *ClassNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.classes[name]
}

func (f *NodeFactory) Feature(name string) *FeatureNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.features[name]
}

// Packages returns every package sorted by name.
func (f *NodeFactory) Packages() []*PackageNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedValues(f.packages)
}

func (f *NodeFactory) Classes() []*ClassNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedValues(f.classes)
}

func (f *NodeFactory) Features() []*FeatureNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedValues(f.features)
}

func sortedValues[T Node](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	SortByName(out)
	return out
}
