package dependency

// Visitor walks the dependency graph. The Traverse methods take a batch of
// nodes; Visit* handles a node reached as a child, VisitInbound* a node
// reached through an inbound edge and VisitOutbound* one reached through an
// outbound edge.
type Visitor interface {
	TraverseNodes(nodes []Node)
	TraverseInbound(nodes []Node)
	TraverseOutbound(nodes []Node)

	VisitPackageNode(node *PackageNode)
	VisitInboundPackageNode(node *PackageNode)
	VisitOutboundPackageNode(node *PackageNode)

	VisitClassNode(node *ClassNode)
	VisitInboundClassNode(node *ClassNode)
	VisitOutboundClassNode(node *ClassNode)

	VisitFeatureNode(node *FeatureNode)
	VisitInboundFeatureNode(node *FeatureNode)
	VisitOutboundFeatureNode(node *FeatureNode)
}

// binder is implemented by visitors whose recursion can be redirected to
// an outer visitor.
type binder interface {
	Bind(self Visitor)
}

// VisitorBase walks every node: a package visits its inbound edges, its
// outbound edges and then its classes; a class does the same with its
// features. Edge visits are leaves.
//
// Embedders call Bind with themselves so recursion reaches their
// overrides. A decorator wrapping the embedder rebinds it to the
// decorator, so the decorator sees every nested node too.
type VisitorBase struct {
	self Visitor
}

func (v *VisitorBase) Bind(self Visitor) { v.self = self }

func (v *VisitorBase) visitor() Visitor {
	if v.self != nil {
		return v.self
	}
	return v
}

func (v *VisitorBase) TraverseNodes(nodes []Node) {
	self := v.visitor()
	for _, n := range nodes {
		n.Accept(self)
	}
}

func (v *VisitorBase) TraverseInbound(nodes []Node) {
	self := v.visitor()
	for _, n := range nodes {
		n.AcceptInbound(self)
	}
}

func (v *VisitorBase) TraverseOutbound(nodes []Node) {
	self := v.visitor()
	for _, n := range nodes {
		n.AcceptOutbound(self)
	}
}

func (v *VisitorBase) VisitPackageNode(node *PackageNode) {
	self := v.visitor()
	self.TraverseInbound(node.Inbound())
	self.TraverseOutbound(node.Outbound())
	self.TraverseNodes(Nodes(node.Classes()))
}

func (v *VisitorBase) VisitClassNode(node *ClassNode) {
	self := v.visitor()
	self.TraverseInbound(node.Inbound())
	self.TraverseOutbound(node.Outbound())
	self.TraverseNodes(Nodes(node.Features()))
}

func (v *VisitorBase) VisitFeatureNode(node *FeatureNode) {
	self := v.visitor()
	self.TraverseInbound(node.Inbound())
	self.TraverseOutbound(node.Outbound())
}

func (v *VisitorBase) VisitInboundPackageNode(*PackageNode)  {}
func (v *VisitorBase) VisitOutboundPackageNode(*PackageNode) {}
func (v *VisitorBase) VisitInboundClassNode(*ClassNode)      {}
func (v *VisitorBase) VisitOutboundClassNode(*ClassNode)     {}
func (v *VisitorBase) VisitInboundFeatureNode(*FeatureNode)  {}
func (v *VisitorBase) VisitOutboundFeatureNode(*FeatureNode) {}

// VisitorDecorator forwards every call to its delegate. Node visits are
// forwarded by double dispatch: VisitPackageNode(p) calls p.Accept on the
// delegate.
type VisitorDecorator struct {
	delegate Visitor
	self     Visitor
}

func NewVisitorDecorator(delegate Visitor) *VisitorDecorator {
	d := &VisitorDecorator{}
	d.SetDelegate(delegate)
	return d
}

func (d *VisitorDecorator) Delegate() Visitor { return d.delegate }

// SetDelegate replaces the delegate and binds it to the outermost visitor
// of the chain.
func (d *VisitorDecorator) SetDelegate(delegate Visitor) {
	d.delegate = delegate
	d.Bind(d.visitor())
}

// Bind makes self the visitor that the delegate chain recurses through.
func (d *VisitorDecorator) Bind(self Visitor) {
	d.self = self
	if b, ok := d.delegate.(binder); ok {
		b.Bind(self)
	}
}

func (d *VisitorDecorator) visitor() Visitor {
	if d.self != nil {
		return d.self
	}
	return d
}

func (d *VisitorDecorator) TraverseNodes(nodes []Node)    { d.delegate.TraverseNodes(nodes) }
func (d *VisitorDecorator) TraverseInbound(nodes []Node)  { d.delegate.TraverseInbound(nodes) }
func (d *VisitorDecorator) TraverseOutbound(nodes []Node) { d.delegate.TraverseOutbound(nodes) }

func (d *VisitorDecorator) VisitPackageNode(node *PackageNode) {
	node.Accept(d.delegate)
}

func (d *VisitorDecorator) VisitInboundPackageNode(node *PackageNode) {
	node.AcceptInbound(d.delegate)
}

func (d *VisitorDecorator) VisitOutboundPackageNode(node *PackageNode) {
	node.AcceptOutbound(d.delegate)
}

func (d *VisitorDecorator) VisitClassNode(node *ClassNode) {
	node.Accept(d.delegate)
}

func (d *VisitorDecorator) VisitInboundClassNode(node *ClassNode) {
	node.AcceptInbound(d.delegate)
}

func (d *VisitorDecorator) VisitOutboundClassNode(node *ClassNode) {
	node.AcceptOutbound(d.delegate)
}

func (d *VisitorDecorator) VisitFeatureNode(node *FeatureNode) {
	node.Accept(d.delegate)
}

func (d *VisitorDecorator) VisitInboundFeatureNode(node *FeatureNode) {
	node.AcceptInbound(d.delegate)
}

func (d *VisitorDecorator) VisitOutboundFeatureNode(node *FeatureNode) {
	node.AcceptOutbound(d.delegate)
}

// SelectiveVisitor is a decorator that consults a TraversalStrategy. Batches
// are ordered once before they reach the delegate. Full visits go through
// only for nodes in scope; edge visits only for nodes in the filter.
type SelectiveVisitor struct {
	VisitorDecorator
	strategy TraversalStrategy
}

func NewSelectiveVisitor(strategy TraversalStrategy, delegate Visitor) *SelectiveVisitor {
	s := &SelectiveVisitor{strategy: strategy}
	s.delegate = delegate
	s.Bind(s)
	return s
}

func (s *SelectiveVisitor) Strategy() TraversalStrategy { return s.strategy }

func (s *SelectiveVisitor) TraverseNodes(nodes []Node) {
	s.delegate.TraverseNodes(s.strategy.Order(nodes))
}

func (s *SelectiveVisitor) TraverseInbound(nodes []Node) {
	s.delegate.TraverseInbound(s.strategy.Order(nodes))
}

func (s *SelectiveVisitor) TraverseOutbound(nodes []Node) {
	s.delegate.TraverseOutbound(s.strategy.Order(nodes))
}

func (s *SelectiveVisitor) VisitPackageNode(node *PackageNode) {
	if s.strategy.IsInScope(node) {
		node.Accept(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitInboundPackageNode(node *PackageNode) {
	if s.strategy.IsInFilter(node) {
		node.AcceptInbound(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitOutboundPackageNode(node *PackageNode) {
	if s.strategy.IsInFilter(node) {
		node.AcceptOutbound(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitClassNode(node *ClassNode) {
	if s.strategy.IsInScope(node) {
		node.Accept(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitInboundClassNode(node *ClassNode) {
	if s.strategy.IsInFilter(node) {
		node.AcceptInbound(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitOutboundClassNode(node *ClassNode) {
	if s.strategy.IsInFilter(node) {
		node.AcceptOutbound(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitFeatureNode(node *FeatureNode) {
	if s.strategy.IsInScope(node) {
		node.Accept(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitInboundFeatureNode(node *FeatureNode) {
	if s.strategy.IsInFilter(node) {
		node.AcceptInbound(s.delegate)
	}
}

func (s *SelectiveVisitor) VisitOutboundFeatureNode(node *FeatureNode) {
	if s.strategy.IsInFilter(node) {
		node.AcceptOutbound(s.delegate)
	}
}
