package dependency_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/dhamidi/depfind/dependency"
)

type mockVisitor struct {
	mock.Mock
}

func (m *mockVisitor) TraverseNodes(nodes []dependency.Node)    { m.Called(nodes) }
func (m *mockVisitor) TraverseInbound(nodes []dependency.Node)  { m.Called(nodes) }
func (m *mockVisitor) TraverseOutbound(nodes []dependency.Node) { m.Called(nodes) }

func (m *mockVisitor) VisitPackageNode(node *dependency.PackageNode)         { m.Called(node) }
func (m *mockVisitor) VisitInboundPackageNode(node *dependency.PackageNode)  { m.Called(node) }
func (m *mockVisitor) VisitOutboundPackageNode(node *dependency.PackageNode) { m.Called(node) }
func (m *mockVisitor) VisitClassNode(node *dependency.ClassNode)             { m.Called(node) }
func (m *mockVisitor) VisitInboundClassNode(node *dependency.ClassNode)      { m.Called(node) }
func (m *mockVisitor) VisitOutboundClassNode(node *dependency.ClassNode)     { m.Called(node) }
func (m *mockVisitor) VisitFeatureNode(node *dependency.FeatureNode)         { m.Called(node) }
func (m *mockVisitor) VisitInboundFeatureNode(node *dependency.FeatureNode)  { m.Called(node) }
func (m *mockVisitor) VisitOutboundFeatureNode(node *dependency.FeatureNode) { m.Called(node) }

type mockStrategy struct {
	mock.Mock
}

func (m *mockStrategy) IsInScope(node dependency.Node) bool {
	return m.Called(node).Bool(0)
}

func (m *mockStrategy) IsInFilter(node dependency.Node) bool {
	return m.Called(node).Bool(0)
}

func (m *mockStrategy) Order(nodes []dependency.Node) []dependency.Node {
	return m.Called(nodes).Get(0).([]dependency.Node)
}

// fixture returns one node of each kind from a fresh factory.
func fixture() (*dependency.PackageNode, *dependency.ClassNode, *dependency.FeatureNode) {
	f := dependency.NewNodeFactory()
	feature := f.CreateFeature("com.example.Shape.area()", true)
	return feature.Class().Package(), feature.Class(), feature
}
