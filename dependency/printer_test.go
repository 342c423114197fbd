package dependency_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/depfind/dependency"
)

func printerGraph() *dependency.NodeFactory {
	f := dependency.NewNodeFactory()
	f.CreateClass("com.example.A", true)
	run := f.CreateFeature("com.example.A.run()", true)
	run.AddDependency(f.CreateClass("com.other.B", false))
	f.CreateClass("Main", true).AddDependency(f.CreateClass("com.example.A", false))
	return f
}

func TestTextPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := dependency.NewTextPrinter(&buf)
	p.TraverseNodes(dependency.Nodes(printerGraph().Packages()))

	require.NoError(t, p.Err())
	assert.Equal(t, `(default package)
    Main
        --> com.example.A
com.example
    A
        <-- Main
        run()
            --> com.other.B *
com.other *
    B *
        <-- com.example.A.run()
`, buf.String())
}

func TestTextPrinterThroughSelectiveVisitor(t *testing.T) {
	scope, err := dependency.NewRegularExpressionSelectionCriteria(nil, []string{`^com\.other`, `^Main$`, `^$`})
	require.NoError(t, err)
	filter, err := dependency.NewRegularExpressionSelectionCriteria(nil, []string{`\.B$`})
	require.NoError(t, err)
	strategy := dependency.NewSortedTraversalStrategy(dependency.NewSelectiveTraversalStrategy(scope, filter))

	var buf bytes.Buffer
	p := dependency.NewTextPrinter(&buf)
	p.SetIndent("  ")
	dependency.NewSelectiveVisitor(strategy, p).TraverseNodes(dependency.Nodes(printerGraph().Packages()))

	require.NoError(t, p.Err())
	assert.Equal(t, `com.example
  A
    <-- Main
    run()
`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextPrinterKeepsFirstError(t *testing.T) {
	p := dependency.NewTextPrinter(failingWriter{})
	p.TraverseNodes(dependency.Nodes(printerGraph().Packages()))
	assert.EqualError(t, p.Err(), "disk full")
}
