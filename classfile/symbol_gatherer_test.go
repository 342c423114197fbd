package classfile_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/depfind/classfile"
	. "github.com/dhamidi/depfind/classfile/classfiletest"
)

func shapeClass(t *testing.T) *classfile.Classfile {
	t.Helper()
	b := New("com/example/Shape")
	b.AddField(0x0002, "width", "I")
	b.AddField(0x0002, "height", "I")
	b.AddMethod(0x0001, "<init>", "()V")
	locals := b.Attribute("LocalVariableTable",
		U2(2),
		U2(0), U2(1), U2(b.Utf8("this")), U2(b.Utf8("Lcom/example/Shape;")), U2(0),
		U2(0), U2(1), U2(b.Utf8("factor")), U2(b.Utf8("I")), U2(1),
	)
	b.AddMethod(0x0001, "scale", "(I)V", b.Code(1, 2, U1(0xb1), nil, locals))
	b.AddMethod(0x0001, "area", "()I")
	return parse(t, b)
}

func innerClass(t *testing.T) *classfile.Classfile {
	t.Helper()
	b := New("com/example/Outer$Inner")
	outer := b.Class("com/example/Outer")
	b.AddAttribute(b.Attribute("InnerClasses", U2(1), U2(b.This()), U2(outer), U2(b.Utf8("Inner")), U2(0x0008)))
	b.AddMethod(0x0000, "run", "()V")
	return parse(t, b)
}

func TestSymbolGathererListsClassBeforeMembers(t *testing.T) {
	strategy := classfile.NewDefaultSymbolGathererStrategy()
	strategy.LocalNames = false
	g := classfile.NewSymbolGatherer(strategy)

	shapeClass(t).Accept(g)

	assert.Equal(t, []string{
		"com.example.Shape",
		"com.example.Shape.width",
		"com.example.Shape.height",
		"com.example.Shape.Shape()",
		"com.example.Shape.scale(int)",
		"com.example.Shape.area()",
	}, g.Symbols())
	assert.Equal(t, g.Symbols(), slices.Collect(g.All()))
}

func TestSymbolGathererLocalVariables(t *testing.T) {
	g := classfile.NewSymbolGatherer(classfile.NewDefaultSymbolGathererStrategy())
	shapeClass(t).Accept(g)

	assert.Contains(t, g.Symbols(), "com.example.Shape.scale(int): this")
	assert.Contains(t, g.Symbols(), "com.example.Shape.scale(int): factor")
	assert.Len(t, g.Symbols(), 8)
}

func TestSymbolGathererSkipsLocalsOutsideCode(t *testing.T) {
	b := New("com/example/Odd")
	table := b.Attribute("LocalVariableTable", U2(1),
		U2(0), U2(1), U2(b.Utf8("x")), U2(b.Utf8("I")), U2(0))
	b.AddAttribute(table)
	b.AddField(0x0002, "count", "I", table)
	cf := parse(t, b)

	g := classfile.NewSymbolGatherer(classfile.NewDefaultSymbolGathererStrategy())
	require.NotPanics(t, func() { cf.Accept(g) })
	assert.Equal(t, []string{"com.example.Odd", "com.example.Odd.count"}, g.Symbols())
}

func TestSymbolGathererInnerClasses(t *testing.T) {
	t.Run("named through its own record", func(t *testing.T) {
		g := classfile.NewSymbolGatherer(classfile.NewDefaultSymbolGathererStrategy())
		innerClass(t).Accept(g)
		assert.Equal(t, []string{"com.example.Outer$Inner", "com.example.Outer$Inner.run()"}, g.Symbols())
	})

	t.Run("inner class names disabled", func(t *testing.T) {
		strategy := classfile.NewDefaultSymbolGathererStrategy()
		strategy.InnerClassNames = false
		g := classfile.NewSymbolGatherer(strategy)
		innerClass(t).Accept(g)
		assert.Equal(t, []string{"com.example.Outer$Inner.run()"}, g.Symbols())
	})

	t.Run("records for other classes are ignored", func(t *testing.T) {
		b := New("com/example/Outer")
		nested := b.Class("com/example/Outer$Inner")
		b.AddAttribute(b.Attribute("InnerClasses", U2(1), U2(nested), U2(b.This()), U2(b.Utf8("Inner")), U2(0)))

		strategy := classfile.NewDefaultSymbolGathererStrategy()
		strategy.InnerClassNames = false
		g := classfile.NewSymbolGatherer(strategy)
		parse(t, b).Accept(g)
		assert.Equal(t, []string{"com.example.Outer"}, g.Symbols())
	})
}

func TestSymbolGathererClassNamesDisabled(t *testing.T) {
	strategy := &classfile.DefaultSymbolGathererStrategy{MethodNames: true}
	g := classfile.NewSymbolGatherer(strategy)
	g.VisitClassfiles([]*classfile.Classfile{shapeClass(t), innerClass(t)})

	assert.Equal(t, []string{
		"com.example.Shape.Shape()",
		"com.example.Shape.scale(int)",
		"com.example.Shape.area()",
		"com.example.Outer$Inner.run()",
	}, g.Symbols())
}

func TestFilteringSymbolGathererStrategy(t *testing.T) {
	t.Run("include and exclude", func(t *testing.T) {
		strategy, err := classfile.NewFilteringSymbolGathererStrategy(
			classfile.NewDefaultSymbolGathererStrategy(),
			[]string{`\.(width|area)`, `^com\.example\.Shape$`},
			[]string{`area`},
		)
		require.NoError(t, err)

		g := classfile.NewSymbolGatherer(strategy)
		shapeClass(t).Accept(g)
		assert.Equal(t, []string{"com.example.Shape", "com.example.Shape.width"}, g.Symbols())
	})

	t.Run("empty includes match everything", func(t *testing.T) {
		strategy, err := classfile.NewFilteringSymbolGathererStrategy(
			classfile.NewDefaultSymbolGathererStrategy(), nil, []string{`^this$`})
		require.NoError(t, err)

		g := classfile.NewSymbolGatherer(strategy)
		shapeClass(t).Accept(g)
		assert.Contains(t, g.Symbols(), "com.example.Shape.scale(int): factor")
		assert.NotContains(t, g.Symbols(), "com.example.Shape.scale(int): this")
		assert.Len(t, g.Symbols(), 7)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := classfile.NewFilteringSymbolGathererStrategy(
			classfile.NewDefaultSymbolGathererStrategy(), []string{"("}, nil)
		assert.Error(t, err)
	})
}
