package dependency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dhamidi/depfind/dependency"
)

// visitCase names one of the nine node visits, the call that makes it on a
// visitor and the node passed.
type visitCase struct {
	method string
	node   dependency.Node
	call   func(v dependency.Visitor)
}

func visitCases() []visitCase {
	pkg, class, feature := fixture()
	return []visitCase{
		{"VisitPackageNode", pkg, func(v dependency.Visitor) { v.VisitPackageNode(pkg) }},
		{"VisitInboundPackageNode", pkg, func(v dependency.Visitor) { v.VisitInboundPackageNode(pkg) }},
		{"VisitOutboundPackageNode", pkg, func(v dependency.Visitor) { v.VisitOutboundPackageNode(pkg) }},
		{"VisitClassNode", class, func(v dependency.Visitor) { v.VisitClassNode(class) }},
		{"VisitInboundClassNode", class, func(v dependency.Visitor) { v.VisitInboundClassNode(class) }},
		{"VisitOutboundClassNode", class, func(v dependency.Visitor) { v.VisitOutboundClassNode(class) }},
		{"VisitFeatureNode", feature, func(v dependency.Visitor) { v.VisitFeatureNode(feature) }},
		{"VisitInboundFeatureNode", feature, func(v dependency.Visitor) { v.VisitInboundFeatureNode(feature) }},
		{"VisitOutboundFeatureNode", feature, func(v dependency.Visitor) { v.VisitOutboundFeatureNode(feature) }},
	}
}

func TestVisitorDecoratorForwardsVisits(t *testing.T) {
	for _, tc := range visitCases() {
		t.Run(tc.method, func(t *testing.T) {
			delegate := &mockVisitor{}
			delegate.Test(t)
			delegate.On(tc.method, tc.node).Once()

			tc.call(dependency.NewVisitorDecorator(delegate))

			delegate.AssertExpectations(t)
		})
	}
}

func TestVisitorDecoratorForwardsTraversals(t *testing.T) {
	pkg, _, _ := fixture()
	nodes := []dependency.Node{pkg}

	for _, method := range []string{"TraverseNodes", "TraverseInbound", "TraverseOutbound"} {
		t.Run(method, func(t *testing.T) {
			delegate := &mockVisitor{}
			delegate.Test(t)
			delegate.On(method, nodes).Once()

			d := dependency.NewVisitorDecorator(delegate)
			switch method {
			case "TraverseNodes":
				d.TraverseNodes(nodes)
			case "TraverseInbound":
				d.TraverseInbound(nodes)
			case "TraverseOutbound":
				d.TraverseOutbound(nodes)
			}

			delegate.AssertExpectations(t)
		})
	}
}

func TestVisitorDecoratorSetDelegate(t *testing.T) {
	first, second := &mockVisitor{}, &mockVisitor{}
	first.Test(t)
	second.Test(t)
	pkg, _, _ := fixture()
	second.On("VisitPackageNode", pkg).Once()

	d := dependency.NewVisitorDecorator(first)
	d.SetDelegate(second)
	d.VisitPackageNode(pkg)

	assert.Same(t, second, d.Delegate())
	second.AssertExpectations(t)
	first.AssertNotCalled(t, "VisitPackageNode", mock.Anything)
}

// countingVisitor counts full visits per kind while keeping the base
// traversal.
type countingVisitor struct {
	dependency.VisitorBase
	packages, classes, features int
	inbound, outbound           []string
}

func newCountingVisitor() *countingVisitor {
	v := &countingVisitor{}
	v.Bind(v)
	return v
}

func (v *countingVisitor) VisitPackageNode(node *dependency.PackageNode) {
	v.packages++
	v.VisitorBase.VisitPackageNode(node)
}

func (v *countingVisitor) VisitClassNode(node *dependency.ClassNode) {
	v.classes++
	v.VisitorBase.VisitClassNode(node)
}

func (v *countingVisitor) VisitFeatureNode(node *dependency.FeatureNode) {
	v.features++
	v.VisitorBase.VisitFeatureNode(node)
}

func (v *countingVisitor) VisitInboundClassNode(node *dependency.ClassNode) {
	v.inbound = append(v.inbound, node.Name())
}

func (v *countingVisitor) VisitOutboundClassNode(node *dependency.ClassNode) {
	v.outbound = append(v.outbound, node.Name())
}

func TestVisitorBaseWalksChildrenAndEdges(t *testing.T) {
	f := dependency.NewNodeFactory()
	shape := f.CreateClass("com.example.Shape", true)
	circle := f.CreateClass("com.example.Circle", true)
	f.CreateFeature("com.example.Shape.area()", true)
	f.CreateFeature("com.example.Circle.radius", true)
	circle.AddDependency(shape)

	v := newCountingVisitor()
	v.TraverseNodes(dependency.Nodes(f.Packages()))

	assert.Equal(t, 1, v.packages)
	assert.Equal(t, 2, v.classes)
	assert.Equal(t, 2, v.features)
	assert.Equal(t, []string{"com.example.Circle"}, v.inbound)
	assert.Equal(t, []string{"com.example.Shape"}, v.outbound)
}

func TestDecoratedVisitorRecursesThroughDecorator(t *testing.T) {
	f := dependency.NewNodeFactory()
	f.CreateFeature("com.example.Shape.area()", true)
	f.CreateFeature("com.other.Util.help()", true)

	scope, err := dependency.NewRegularExpressionSelectionCriteria(nil, []string{`^com\.other`})
	assert.NoError(t, err)
	strategy := dependency.NewSelectiveTraversalStrategy(scope, dependency.ComprehensiveSelectionCriteria{})

	inner := newCountingVisitor()
	outer := dependency.NewVisitorDecorator(dependency.NewSelectiveVisitor(strategy, inner))
	outer.TraverseNodes(dependency.Nodes(f.Packages()))

	assert.Equal(t, 1, inner.packages)
	assert.Equal(t, 1, inner.classes)
	assert.Equal(t, 1, inner.features)
}
