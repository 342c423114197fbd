package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/depfind/classfile"
	. "github.com/dhamidi/depfind/classfile/classfiletest"
)

func parse(t *testing.T, b *Builder) *classfile.Classfile {
	t.Helper()
	cf, err := classfile.ParseBytes(b.Bytes())
	require.NoError(t, err)
	return cf
}

func TestCodeAttribute(t *testing.T) {
	b := New("com/example/Greeter")
	out := b.Fieldref("java/lang/System", "out", "Ljava/io/PrintStream;")
	printlnRef := b.Methodref("java/io/PrintStream", "println", "(Ljava/lang/String;)V")
	hi := b.StringConstant("hi")
	foo := b.Class("com/example/Foo")
	ioe := b.Class("java/io/IOException")
	code := Concat(
		U1(0xb2), U2(out),
		U1(0x2a),
		U1(0xb6), U2(printlnRef),
		U1(0x12), U1(uint8(hi)),
		U1(0xbb), U2(foo),
		U1(0xb1),
	)
	lines := b.Attribute("LineNumberTable", U2(2), U2(0), U2(10), U2(7), U2(11))
	locals := b.Attribute("LocalVariableTable", U2(1),
		U2(0), U2(13), U2(b.Utf8("who")), U2(b.Utf8("Ljava/lang/String;")), U2(0))
	b.AddMethod(0x0009, "greet", "(Ljava/lang/String;)V",
		b.Code(2, 1, code, [][]byte{Handler(0, 9, 12, ioe), Handler(0, 9, 12, 0)}, lines, locals))

	cf := parse(t, b)
	method := cf.Method("greet", "")
	require.NotNil(t, method)
	attr := method.Code()
	require.NotNil(t, attr)

	t.Run("header", func(t *testing.T) {
		assert.Equal(t, uint16(2), attr.MaxStack)
		assert.Equal(t, uint16(1), attr.MaxLocals)
		assert.Equal(t, code, attr.Code)
		assert.Same(t, method, attr.Method())
	})

	t.Run("instructions", func(t *testing.T) {
		require.Len(t, attr.Instructions, 6)
		var offsets []int
		var mnemonics []string
		for _, insn := range attr.Instructions {
			offsets = append(offsets, insn.Offset)
			mnemonics = append(mnemonics, insn.Mnemonic())
		}
		assert.Equal(t, []int{0, 3, 4, 7, 9, 12}, offsets)
		assert.Equal(t, []string{"getstatic", "aload_0", "invokevirtual", "ldc", "new", "return"}, mnemonics)

		assert.IsType(t, &classfile.ConstantFieldrefInfo{}, attr.Instructions[0].Entry)
		assert.Equal(t, out, attr.Instructions[0].Index)
		assert.Nil(t, attr.Instructions[1].Entry)
		assert.IsType(t, &classfile.ConstantMethodrefInfo{}, attr.Instructions[2].Entry)
		assert.IsType(t, &classfile.ConstantStringInfo{}, attr.Instructions[3].Entry)
		assert.Equal(t, "com.example.Foo", attr.Instructions[4].Entry.(*classfile.ConstantClassInfo).ClassName())

		slot, ok := attr.Instructions[1].LocalVariableIndex()
		assert.True(t, ok)
		assert.Equal(t, 0, slot)
	})

	t.Run("exception handlers", func(t *testing.T) {
		require.Len(t, attr.ExceptionHandlers, 2)
		assert.Equal(t, "java.io.IOException", attr.ExceptionHandlers[0].CatchTypeName())
		assert.Nil(t, attr.ExceptionHandlers[1].CatchType)
		assert.Equal(t, "", attr.ExceptionHandlers[1].CatchTypeName())
	})

	t.Run("nested attributes", func(t *testing.T) {
		require.Len(t, attr.Attributes, 2)
		assert.Len(t, attr.LineNumbers(), 2)
		assert.Equal(t, 11, attr.LineNumberAt(8))
		assert.Equal(t, 10, attr.LineNumberAt(0))

		require.Len(t, attr.LocalVariables(), 1)
		local := attr.LocalVariables()[0]
		assert.Equal(t, "who", local.Name)
		assert.Equal(t, "java.lang.String", local.Type())
		assert.Same(t, method, local.Method())
	})
}

func TestInstructionForms(t *testing.T) {
	b := New("com/example/Switch")
	code := Concat(
		U1(0x1a),
		U1(0xaa), []byte{0, 0}, U4(23), U4(0), U4(1), U4(20), U4(21),
		U1(0xc4), U1(0x84), U2(300), U2(1),
		U1(0xb1),
	)
	b.AddMethod(0x0008, "pick", "(I)V", b.Code(1, 301, code, nil))

	cf := parse(t, b)
	insns := cf.Method("pick", "").Code().Instructions
	require.Len(t, insns, 4)

	assert.Equal(t, "tableswitch", insns[1].Mnemonic())
	assert.Equal(t, 1, insns[1].Offset)
	assert.Equal(t, 23, insns[1].Length())

	assert.Equal(t, 24, insns[2].Offset)
	assert.True(t, insns[2].Wide)
	assert.Equal(t, classfile.OpIinc, insns[2].Opcode)
	assert.Equal(t, 6, insns[2].Length())
	slot, ok := insns[2].LocalVariableIndex()
	assert.True(t, ok)
	assert.Equal(t, 300, slot)

	assert.Equal(t, 30, insns[3].Offset)
}

func TestBootstrapMethodsAttribute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		b := New("com/example/NoLambdas")
		b.AddAttribute(b.Attribute("BootstrapMethods", U2(0)))

		cf := parse(t, b)
		attr, ok := cf.Attribute("BootstrapMethods").(*classfile.BootstrapMethodsAttribute)
		require.True(t, ok)
		assert.Empty(t, attr.BootstrapMethods)
		assert.Equal(t, uint32(2), attr.AttributeLength())
	})

	t.Run("with arguments", func(t *testing.T) {
		b := New("com/example/Lambdas")
		factory := b.MethodHandle(6, b.Methodref("java/lang/invoke/LambdaMetafactory", "metafactory",
			"(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodHandle;Ljava/lang/invoke/MethodType;)Ljava/lang/invoke/CallSite;"))
		erased := b.MethodType("()V")
		impl := b.MethodHandle(6, b.Methodref("com/example/Lambdas", "lambda$0", "()V"))
		b.AddAttribute(b.Attribute("BootstrapMethods", U2(1), U2(factory), U2(3), U2(erased), U2(impl), U2(erased)))

		cf := parse(t, b)
		attr := cf.Attribute("BootstrapMethods").(*classfile.BootstrapMethodsAttribute)
		require.Len(t, attr.BootstrapMethods, 1)
		m := attr.BootstrapMethods[0]
		assert.Equal(t, factory, m.MethodRefIndex)
		assert.Equal(t, "metafactory", m.MethodRef.Reference.Name())
		assert.Equal(t, []uint16{erased, impl, erased}, m.ArgumentIndexes)
		require.Len(t, m.Arguments, 3)
		assert.IsType(t, &classfile.ConstantMethodTypeInfo{}, m.Arguments[0])
		assert.IsType(t, &classfile.ConstantMethodHandleInfo{}, m.Arguments[1])
	})
}

func TestMethodParametersAttribute(t *testing.T) {
	b := New("com/example/Params")
	b.AddMethod(0x0001, "sum", "(II)I", b.Attribute("MethodParameters",
		U1(2), U2(b.Utf8("left")), U2(0x0010), U2(0), U2(0x1000)))

	cf := parse(t, b)
	params := cf.Method("sum", "").Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "left", params[0].Name)
	assert.True(t, params[0].AccessFlags.IsFinal())
	assert.Equal(t, uint16(0), params[1].NameIndex)
	assert.Equal(t, "", params[1].Name)
	assert.True(t, params[1].AccessFlags.IsSynthetic())
	assert.Equal(t, uint32(9), cf.Method("sum", "").Attribute("MethodParameters").AttributeLength())
}

func moduleInfo() *Builder {
	return New("module-info").NoSuper().SetAccess(0x8000)
}

func TestModuleAttributeProvides(t *testing.T) {
	b := moduleInfo()
	module := b.Module("com.example.app")
	serviceName := b.Utf8("com/example/spi/Service")
	b.PadTo(234)
	service := b.Raw(7, U2(serviceName))
	require.Equal(t, uint16(234), service)
	impl := b.Class("com/example/impl/ServiceImpl")
	b.AddAttribute(b.Attribute("Module",
		U2(module), U2(0), U2(0),
		U2(0), U2(0), U2(0), U2(0),
		U2(1), U2(234), U2(1), U2(impl),
	))

	cf := parse(t, b)
	attr, ok := cf.Attribute("Module").(*classfile.ModuleAttribute)
	require.True(t, ok)
	assert.Equal(t, uint32(22), attr.AttributeLength())
	assert.Equal(t, "com.example.app", attr.ModuleName())
	assert.Empty(t, attr.Requires)

	require.Len(t, attr.Provides, 1)
	provides := attr.Provides[0]
	assert.Equal(t, uint16(234), provides.ProvidesIndex)
	assert.Equal(t, "com.example.spi.Service", provides.Provides.ClassName())
	assert.Equal(t, []uint16{impl}, provides.ProvidesWithIndexes)
	assert.Equal(t, "com.example.impl.ServiceImpl", provides.ProvidesWith[0].ClassName())
}

func TestModuleAttributeDirectives(t *testing.T) {
	b := moduleInfo()
	module := b.Module("com.example.app")
	base := b.Module("java.base")
	friend := b.Module("com.example.friend")
	version := b.Utf8("17")
	api := b.Package("com/example/api")
	internal := b.Package("com/example/internal")
	driver := b.Class("java/sql/Driver")
	b.AddAttribute(b.Attribute("Module",
		U2(module), U2(0x0020), U2(version),
		U2(1), U2(base), U2(0x8000), U2(version),
		U2(1), U2(api), U2(0), U2(0),
		U2(1), U2(internal), U2(0), U2(1), U2(friend),
		U2(1), U2(driver),
		U2(0),
	))
	b.AddAttribute(b.Attribute("ModulePackages", U2(2), U2(api), U2(internal)))
	b.AddAttribute(b.Attribute("ModuleMainClass", U2(b.Class("com/example/Main"))))

	cf := parse(t, b)
	assert.True(t, cf.IsModule())
	attr := cf.Attribute("Module").(*classfile.ModuleAttribute)
	assert.Equal(t, "17", attr.ModuleVersion)
	require.Len(t, attr.Requires, 1)
	assert.Equal(t, "java.base", attr.Requires[0].Requires.Name)
	assert.True(t, attr.Requires[0].RequiresFlags.IsMandated())
	require.Len(t, attr.Exports, 1)
	assert.Equal(t, "com.example.api", attr.Exports[0].Exports.PackageName())
	assert.Empty(t, attr.Exports[0].ExportsTo)
	require.Len(t, attr.Opens, 1)
	require.Len(t, attr.Opens[0].OpensTo, 1)
	assert.Equal(t, "com.example.friend", attr.Opens[0].OpensTo[0].Name)
	require.Len(t, attr.Uses, 1)
	assert.Equal(t, "java.sql.Driver", attr.Uses[0].Uses.ClassName())

	packages := cf.Attribute("ModulePackages").(*classfile.ModulePackagesAttribute)
	assert.Len(t, packages.Packages, 2)
	mainClass := cf.Attribute("ModuleMainClass").(*classfile.ModuleMainClassAttribute)
	assert.Equal(t, "com.example.Main", mainClass.MainClass.ClassName())
}

func TestInnerClassesAttribute(t *testing.T) {
	b := New("com/example/Outer$1")
	outer := b.Class("com/example/Outer")
	named := b.Class("com/example/Outer$Named")
	b.AddAttribute(b.Attribute("InnerClasses", U2(2),
		U2(b.This()), U2(0), U2(0), U2(0x0000),
		U2(named), U2(outer), U2(b.Utf8("Named")), U2(0x0009),
	))
	b.AddAttribute(b.Attribute("EnclosingMethod", U2(outer), U2(0)))

	cf := parse(t, b)
	inner := cf.InnerClasses()
	require.Len(t, inner, 2)

	assert.True(t, inner[0].IsAnonymous())
	assert.False(t, inner[0].IsMember())
	assert.Nil(t, inner[0].OuterClassInfo)
	assert.Equal(t, "com.example.Outer$1", inner[0].InnerClassName())
	assert.Same(t, cf, inner[0].Classfile())

	assert.Equal(t, "Named", inner[1].InnerName)
	assert.Equal(t, "com.example.Outer", inner[1].OuterClassName())
	assert.True(t, inner[1].AccessFlags.IsStatic())

	enclosing := cf.Attribute("EnclosingMethod").(*classfile.EnclosingMethodAttribute)
	assert.Equal(t, "com.example.Outer", enclosing.Class.ClassName())
	assert.Nil(t, enclosing.Method)
}

func TestStackMapTableAttribute(t *testing.T) {
	b := New("com/example/Frames")
	str := b.Class("java/lang/String")
	table := b.Attribute("StackMapTable", U2(5),
		U1(3),
		U1(66), U1(7), U2(str),
		U1(252), U2(4), U1(1),
		U1(255), U2(5), U2(2), U1(7), U2(str), U1(8), U2(7), U2(1), U1(0),
		U1(249), U2(1),
	)
	b.AddMethod(0x0001, "m", "()V", b.Code(1, 2, U1(0xb1), nil, table))

	cf := parse(t, b)
	frames := cf.Method("m", "").Code().Attributes[0].(*classfile.StackMapTableAttribute).Frames
	require.Len(t, frames, 5)

	assert.Equal(t, classfile.SameFrame, frames[0].Kind)
	assert.Equal(t, uint16(3), frames[0].OffsetDelta)

	assert.Equal(t, classfile.SameLocals1StackItemFrame, frames[1].Kind)
	assert.Equal(t, uint16(2), frames[1].OffsetDelta)
	require.Len(t, frames[1].Stack, 1)
	assert.Equal(t, "java.lang.String", frames[1].Stack[0].Class.ClassName())

	assert.Equal(t, classfile.AppendFrame, frames[2].Kind)
	require.Len(t, frames[2].Locals, 1)
	assert.Equal(t, classfile.ItemInteger, frames[2].Locals[0].Tag)

	assert.Equal(t, classfile.FullFrame, frames[3].Kind)
	require.Len(t, frames[3].Locals, 2)
	assert.Equal(t, uint16(7), frames[3].Locals[1].Offset)
	require.Len(t, frames[3].Stack, 1)
	assert.Equal(t, classfile.ItemTop, frames[3].Stack[0].Tag)

	assert.Equal(t, classfile.ChopFrame, frames[4].Kind)
}

func TestAnnotationAttributes(t *testing.T) {
	b := New("com/example/Annotated")
	annotations := b.Attribute("RuntimeVisibleAnnotations", U2(1),
		U2(b.Utf8("Lcom/example/Tag;")), U2(5),
		U2(b.Utf8("value")), U1('s'), U2(b.Utf8("x")),
		U2(b.Utf8("level")), U1('e'), U2(b.Utf8("Lcom/example/Level;")), U2(b.Utf8("HIGH")),
		U2(b.Utf8("items")), U1('['), U2(2), U1('I'), U2(b.Integer(1)), U1('I'), U2(b.Integer(2)),
		U2(b.Utf8("nested")), U1('@'), U2(b.Utf8("Lcom/example/Inner;")), U2(0),
		U2(b.Utf8("type")), U1('c'), U2(b.Utf8("Ljava/lang/String;")),
	)
	b.AddAttribute(annotations)
	b.AddField(0x0002, "f", "I",
		b.Attribute("RuntimeInvisibleTypeAnnotations", U2(1),
			U1(0x13), U1(1), U1(3), U1(0), U2(b.Utf8("Lcom/example/NonNull;")), U2(0)),
		b.Attribute("Deprecated"),
		b.Attribute("Synthetic"),
	)
	b.AddMethod(0x0401, "value", "(Ljava/lang/String;)I",
		b.Attribute("RuntimeInvisibleParameterAnnotations", U1(1), U2(1), U2(b.Utf8("Lcom/example/Checked;")), U2(0)),
		b.Attribute("AnnotationDefault", U1('I'), U2(b.Integer(7))),
		b.Attribute("Signature", U2(b.Utf8("<T:Ljava/lang/Object;>(TT;)I"))),
	)

	cf := parse(t, b)

	t.Run("class annotations", func(t *testing.T) {
		attr := cf.Attribute("RuntimeVisibleAnnotations").(*classfile.AnnotationsAttribute)
		assert.True(t, attr.Visible)
		require.Len(t, attr.Annotations, 1)
		a := attr.Annotations[0]
		assert.Equal(t, "com.example.Tag", a.TypeName())
		require.Len(t, a.ElementValuePairs, 5)

		value := a.ElementValuePairs[0].Value
		assert.Equal(t, byte('s'), value.Tag)
		assert.Equal(t, "x", value.Const.(*classfile.ConstantUtf8Info).Value)

		level := a.ElementValuePairs[1].Value
		assert.Equal(t, "HIGH", level.EnumConstName)
		assert.Equal(t, "Lcom/example/Level;", level.EnumTypeName)

		items := a.ElementValuePairs[2].Value
		require.Len(t, items.Values, 2)
		assert.Equal(t, int32(2), items.Values[1].Const.(*classfile.ConstantIntegerInfo).Value)

		nested := a.ElementValuePairs[3].Value
		require.NotNil(t, nested.Annotation)
		assert.Equal(t, "com.example.Inner", nested.Annotation.TypeName())

		assert.Equal(t, "Ljava/lang/String;", a.ElementValuePairs[4].Value.ClassInfo)
	})

	t.Run("field type annotation and markers", func(t *testing.T) {
		f := cf.Field("f")
		attr := f.Attribute("RuntimeInvisibleTypeAnnotations").(*classfile.TypeAnnotationsAttribute)
		assert.False(t, attr.Visible)
		require.Len(t, attr.Annotations, 1)
		ta := attr.Annotations[0]
		assert.Equal(t, uint8(0x13), ta.TargetType)
		assert.Equal(t, []classfile.TypePathEntry{{TypePathKind: 3, TypeArgumentIndex: 0}}, ta.TargetPath)
		assert.Equal(t, "com.example.NonNull", ta.TypeName())
		assert.True(t, f.IsDeprecated())
		assert.IsType(t, &classfile.SyntheticAttribute{}, f.Attribute("Synthetic"))
	})

	t.Run("method annotations", func(t *testing.T) {
		m := cf.Method("value", "")
		params := m.Attribute("RuntimeInvisibleParameterAnnotations").(*classfile.ParameterAnnotationsAttribute)
		require.Len(t, params.Parameters, 1)
		assert.Equal(t, "com.example.Checked", params.Parameters[0].Annotations[0].TypeName())

		def := m.Attribute("AnnotationDefault").(*classfile.AnnotationDefaultAttribute)
		assert.Equal(t, int32(7), def.DefaultValue.Const.(*classfile.ConstantIntegerInfo).Value)
		assert.Equal(t, "<T:Ljava/lang/Object;>(TT;)I", m.GenericSignature())
	})
}

func TestRecordAndNestAttributes(t *testing.T) {
	b := New("com/example/Point")
	b.SetSuper("java/lang/Record")
	b.AddAttribute(b.Attribute("Record", U2(2),
		U2(b.Utf8("x")), U2(b.Utf8("I")), U2(0),
		U2(b.Utf8("tags")), U2(b.Utf8("Ljava/util/List;")), U2(1),
		b.Attribute("Signature", U2(b.Utf8("Ljava/util/List<Ljava/lang/String;>;"))),
	))
	b.AddAttribute(b.Attribute("NestMembers", U2(1), U2(b.Class("com/example/Point$Builder"))))
	b.AddAttribute(b.Attribute("PermittedSubclasses", U2(0)))
	b.AddAttribute(b.Attribute("NestHost", U2(b.This())))

	cf := parse(t, b)
	record := cf.Attribute("Record").(*classfile.RecordAttribute)
	require.Len(t, record.Components, 2)
	assert.Equal(t, "x", record.Components[0].Name)
	assert.Empty(t, record.Components[0].Attributes)
	require.Len(t, record.Components[1].Attributes, 1)
	assert.IsType(t, &classfile.SignatureAttribute{}, record.Components[1].Attributes[0])

	nest := cf.Attribute("NestMembers").(*classfile.NestMembersAttribute)
	assert.Equal(t, "com.example.Point$Builder", nest.Classes[0].ClassName())
	assert.Empty(t, cf.Attribute("PermittedSubclasses").(*classfile.PermittedSubclassesAttribute).Classes)
	assert.Equal(t, "com.example.Point", cf.Attribute("NestHost").(*classfile.NestHostAttribute).HostClass.ClassName())
}
