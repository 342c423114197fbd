package dependency_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/depfind/dependency"
)

func names[T dependency.Node](nodes []T) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestNodeFactoryDeduplicates(t *testing.T) {
	f := dependency.NewNodeFactory()

	feature := f.CreateFeature("com.example.Shape.scale(int, java.lang.String)", false)
	class := f.CreateClass("com.example.Shape", false)
	pkg := f.CreatePackage("com.example", false)

	assert.Same(t, class, feature.Class())
	assert.Same(t, pkg, class.Package())
	assert.Same(t, feature, f.CreateFeature("com.example.Shape.scale(int, java.lang.String)", true))
	assert.Same(t, class, pkg.Class("com.example.Shape"))
	assert.Same(t, feature, class.Feature(feature.Name()))
	assert.Equal(t, "Shape", class.SimpleName())
	assert.Equal(t, "scale(int, java.lang.String)", feature.SimpleName())
	assert.Len(t, f.Packages(), 1)
	assert.Len(t, f.Classes(), 1)
	assert.Len(t, f.Features(), 1)
}

func TestNodeFactoryConfirmation(t *testing.T) {
	f := dependency.NewNodeFactory()

	ref := f.CreateFeature("java.util.List.size()", false)
	assert.False(t, ref.IsConfirmed())
	assert.False(t, ref.Class().IsConfirmed())
	assert.False(t, ref.Class().Package().IsConfirmed())

	f.CreateFeature("java.util.List.size()", true)
	assert.True(t, ref.IsConfirmed())
	assert.True(t, ref.Class().IsConfirmed())
	assert.True(t, ref.Class().Package().IsConfirmed())

	f.CreateFeature("java.util.List.size()", false)
	assert.True(t, ref.IsConfirmed(), "confirmation is never withdrawn")
}

func TestFeatureClassName(t *testing.T) {
	tests := []struct {
		feature string
		class   string
	}{
		{"com.example.Shape.width", "com.example.Shape"},
		{"com.example.Shape.scale(java.lang.String, a.b.C)", "com.example.Shape"},
		{"com.example.Shape.Shape()", "com.example.Shape"},
		{"com.example.Shape.static {}", "com.example.Shape"},
		{"Top.run()", "Top"},
		{"orphan", ""},
	}
	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			assert.Equal(t, tt.class, dependency.FeatureClassName(tt.feature))
		})
	}
}

func TestDefaultPackage(t *testing.T) {
	f := dependency.NewNodeFactory()
	class := f.CreateClass("Main", true)
	assert.Equal(t, "", class.Package().Name())
	assert.Equal(t, "Main", class.SimpleName())
}

func TestEdgesAreSymmetric(t *testing.T) {
	f := dependency.NewNodeFactory()
	a := f.CreateClass("com.example.A", true)
	b := f.CreateClass("com.example.B", true)
	c := f.CreateFeature("com.example.C.run()", true)

	a.AddDependency(b)
	a.AddDependency(b)
	c.AddDependency(b)
	c.AddDependency(a)
	a.AddDependency(a)

	assert.Equal(t, []string{"com.example.B"}, names(a.Outbound()))
	assert.Equal(t, []string{"com.example.A", "com.example.C.run()"}, names(b.Inbound()))
	assert.Equal(t, []string{"com.example.C.run()"}, names(a.Inbound()))
	assert.Equal(t, []string{"com.example.A", "com.example.B"}, names(c.Outbound()))

	c.RemoveDependency(b)
	assert.Equal(t, []string{"com.example.A"}, names(c.Outbound()))
	assert.Equal(t, []string{"com.example.A"}, names(b.Inbound()))
}

func TestNodeFactoryConcurrentUse(t *testing.T) {
	f := dependency.NewNodeFactory()
	target := f.CreateClass("com.example.Target", true)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				feature := f.CreateFeature(fmt.Sprintf("com.example.C%d.m%d()", j%5, j), true)
				feature.AddDependency(target)
				f.CreateClass("com.example.Shared", i%2 == 0)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, f.Features(), 50)
	assert.Len(t, f.Classes(), 7)
	assert.Len(t, f.Packages(), 1)
	require.Len(t, target.Inbound(), 50)
}

func TestChildrenAreSorted(t *testing.T) {
	f := dependency.NewNodeFactory()
	for _, name := range []string{"b.Z", "a.Y", "b.A", "a.B"} {
		f.CreateClass(name, true)
	}
	assert.Equal(t, []string{"a", "b"}, names(f.Packages()))
	assert.Equal(t, []string{"b.A", "b.Z"}, names(f.Package("b").Classes()))
}
