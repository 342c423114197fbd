// Package dependency models the package, class and feature dependency graph
// derived from parsed class files, and the visitors that walk it.
package dependency

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
)

// Node is a package, class or feature in the dependency graph. Outbound
// edges point at the nodes this one depends on; inbound edges point back at
// its dependents.
type Node interface {
	Name() string
	IsConfirmed() bool
	Inbound() []Node
	Outbound() []Node
	AddDependency(target Node)
	RemoveDependency(target Node)

	Accept(v Visitor)
	AcceptInbound(v Visitor)
	AcceptOutbound(v Visitor)

	base() *nodeBase
}

// nodeBase holds what every node kind shares. mu guards the edge sets and
// the children of the embedding node.
type nodeBase struct {
	mu        sync.RWMutex
	name      string
	confirmed atomic.Bool
	inbound   map[Node]struct{}
	outbound  map[Node]struct{}
}

func (n *nodeBase) init(name string) {
	n.name = name
	n.inbound = make(map[Node]struct{})
	n.outbound = make(map[Node]struct{})
}

func (n *nodeBase) Name() string      { return n.name }
func (n *nodeBase) String() string    { return n.name }
func (n *nodeBase) base() *nodeBase   { return n }
func (n *nodeBase) IsConfirmed() bool { return n.confirmed.Load() }

func (n *nodeBase) Inbound() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return sortedKeys(n.inbound)
}

func (n *nodeBase) Outbound() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return sortedKeys(n.outbound)
}

// addDependency records from -> to on both ends. Each side is locked on
// its own so concurrent collectors never hold two node locks at once.
func addDependency(from, to Node) {
	if to == nil || from == to {
		return
	}
	src, dst := from.base(), to.base()

	src.mu.Lock()
	src.outbound[to] = struct{}{}
	src.mu.Unlock()

	dst.mu.Lock()
	dst.inbound[from] = struct{}{}
	dst.mu.Unlock()
}

func removeDependency(from, to Node) {
	if to == nil || from == to {
		return
	}
	src, dst := from.base(), to.base()

	src.mu.Lock()
	delete(src.outbound, to)
	src.mu.Unlock()

	dst.mu.Lock()
	delete(dst.inbound, from)
	dst.mu.Unlock()
}

func sortedKeys(set map[Node]struct{}) []Node {
	nodes := make([]Node, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}
	SortByName(nodes)
	return nodes
}

// SortByName orders nodes by name in place.
func SortByName[T Node](nodes []T) {
	slices.SortFunc(nodes, func(a, b T) int {
		return cmp.Compare(a.Name(), b.Name())
	})
}

// Nodes widens a slice of concrete nodes to []Node.
func Nodes[T Node](nodes []T) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

type PackageNode struct {
	nodeBase
	classes map[string]*ClassNode
}

func newPackageNode(name string) *PackageNode {
	p := &PackageNode{classes: make(map[string]*ClassNode)}
	p.init(name)
	return p
}

// Classes returns the package's classes sorted by name.
func (p *PackageNode) Classes() []*ClassNode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	classes := make([]*ClassNode, 0, len(p.classes))
	for _, c := range p.classes {
		classes = append(classes, c)
	}
	SortByName(classes)
	return classes
}

func (p *PackageNode) Class(name string) *ClassNode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.classes[name]
}

func (p *PackageNode) addClass(c *ClassNode) {
	p.mu.Lock()
	p.classes[c.name] = c
	p.mu.Unlock()
}

func (p *PackageNode) AddDependency(target Node)    { addDependency(p, target) }
func (p *PackageNode) RemoveDependency(target Node) { removeDependency(p, target) }

func (p *PackageNode) Accept(v Visitor)         { v.VisitPackageNode(p) }
func (p *PackageNode) AcceptInbound(v Visitor)  { v.VisitInboundPackageNode(p) }
func (p *PackageNode) AcceptOutbound(v Visitor) { v.VisitOutboundPackageNode(p) }

type ClassNode struct {
	nodeBase
	pkg      *PackageNode
	features map[string]*FeatureNode
}

func newClassNode(pkg *PackageNode, name string) *ClassNode {
	c := &ClassNode{pkg: pkg, features: make(map[string]*FeatureNode)}
	c.init(name)
	return c
}

// Package returns the package the class belongs to.
func (c *ClassNode) Package() *PackageNode { return c.pkg }

// SimpleName returns the class name without its package.
func (c *ClassNode) SimpleName() string {
	if c.pkg.name == "" {
		return c.name
	}
	return c.name[len(c.pkg.name)+1:]
}

// Features returns the class's fields and methods sorted by name.
func (c *ClassNode) Features() []*FeatureNode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	features := make([]*FeatureNode, 0, len(c.features))
	for _, f := range c.features {
		features = append(features, f)
	}
	SortByName(features)
	return features
}

func (c *ClassNode) Feature(name string) *FeatureNode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.features[name]
}

func (c *ClassNode) addFeature(f *FeatureNode) {
	c.mu.Lock()
	c.features[f.name] = f
	c.mu.Unlock()
}

func (c *ClassNode) AddDependency(target Node)    { addDependency(c, target) }
func (c *ClassNode) RemoveDependency(target Node) { removeDependency(c, target) }

func (c *ClassNode) Accept(v Visitor)         { v.VisitClassNode(c) }
func (c *ClassNode) AcceptInbound(v Visitor)  { v.VisitInboundClassNode(c) }
func (c *ClassNode) AcceptOutbound(v Visitor) { v.VisitOutboundClassNode(c) }

// FeatureNode is a field ("pkg.Class.field") or a method
// ("pkg.Class.method(int, java.lang.String)").
type FeatureNode struct {
	nodeBase
	class *ClassNode
}

func newFeatureNode(class *ClassNode, name string) *FeatureNode {
	f := &FeatureNode{class: class}
	f.init(name)
	return f
}

func (f *FeatureNode) Class() *ClassNode { return f.class }

// SimpleName returns the feature name without its class.
func (f *FeatureNode) SimpleName() string {
	return f.name[len(f.class.name)+1:]
}

func (f *FeatureNode) AddDependency(target Node)    { addDependency(f, target) }
func (f *FeatureNode) RemoveDependency(target Node) { removeDependency(f, target) }

func (f *FeatureNode) Accept(v Visitor)         { v.VisitFeatureNode(f) }
func (f *FeatureNode) AcceptInbound(v Visitor)  { v.VisitInboundFeatureNode(f) }
func (f *FeatureNode) AcceptOutbound(v Visitor) { v.VisitOutboundFeatureNode(f) }
