package classfile

import "strings"

// featureInfo holds what fields and methods share. The classfile pointer is
// a back-reference; the Classfile owns its features, not the other way around.
type featureInfo struct {
	classfile       *Classfile
	accessFlags     AccessFlags
	nameIndex       uint16
	descriptorIndex uint16
	name            string
	descriptor      string
	attributes      []AttributeInfo
}

func (f *featureInfo) Classfile() *Classfile       { return f.classfile }
func (f *featureInfo) AccessFlags() AccessFlags    { return f.accessFlags }
func (f *featureInfo) NameIndex() uint16           { return f.nameIndex }
func (f *featureInfo) DescriptorIndex() uint16     { return f.descriptorIndex }
func (f *featureInfo) Name() string                { return f.name }
func (f *featureInfo) Descriptor() string          { return f.descriptor }
func (f *featureInfo) Attributes() []AttributeInfo { return f.attributes }
func (f *featureInfo) Attribute(name string) AttributeInfo {
	return findAttributeByName(f.attributes, name)
}

func (f *featureInfo) IsPublic() bool    { return f.accessFlags.IsPublic() }
func (f *featureInfo) IsProtected() bool { return f.accessFlags.IsProtected() }
func (f *featureInfo) IsPrivate() bool   { return f.accessFlags.IsPrivate() }
func (f *featureInfo) IsPackage() bool {
	return f.accessFlags&(AccPublic|AccProtected|AccPrivate) == 0
}
func (f *featureInfo) IsStatic() bool    { return f.accessFlags.IsStatic() }
func (f *featureInfo) IsFinal() bool     { return f.accessFlags.IsFinal() }
func (f *featureInfo) IsSynthetic() bool { return f.accessFlags.IsSynthetic() }

func (f *featureInfo) IsDeprecated() bool {
	return findAttribute[*DeprecatedAttribute](f.attributes) != nil
}

// GenericSignature returns the Signature attribute value, if any.
func (f *featureInfo) GenericSignature() string {
	if s := findAttribute[*SignatureAttribute](f.attributes); s != nil {
		return s.Signature
	}
	return ""
}

type modifier struct {
	set  bool
	text string
}

func (f *featureInfo) writeModifiers(sb *strings.Builder, extra ...modifier) {
	if f.IsPublic() {
		sb.WriteString("public ")
	}
	if f.IsProtected() {
		sb.WriteString("protected ")
	}
	if f.IsPrivate() {
		sb.WriteString("private ")
	}
	if f.IsStatic() {
		sb.WriteString("static ")
	}
	if f.IsFinal() {
		sb.WriteString("final ")
	}
	for _, m := range extra {
		if m.set {
			sb.WriteString(m.text)
			sb.WriteString(" ")
		}
	}
}

type FieldInfo struct {
	featureInfo
}

func (f *FieldInfo) IsVolatile() bool  { return f.accessFlags.IsVolatile() }
func (f *FieldInfo) IsTransient() bool { return f.accessFlags.IsTransient() }
func (f *FieldInfo) IsEnum() bool      { return f.accessFlags.IsEnum() }

// Type returns the field's type in source form.
func (f *FieldInfo) Type() string {
	return TypeFromDescriptor(f.descriptor)
}

func (f *FieldInfo) Signature() string {
	return f.name
}

func (f *FieldInfo) FullSignature() string {
	return f.classfile.ClassName() + "." + f.Signature()
}

func (f *FieldInfo) ConstantValue() *ConstantValueAttribute {
	return findAttribute[*ConstantValueAttribute](f.attributes)
}

// Declaration renders the field as it would appear in source, without an
// initializer: "private static final int count".
func (f *FieldInfo) Declaration() string {
	var sb strings.Builder
	f.writeModifiers(&sb,
		modifier{f.IsVolatile(), "volatile"},
		modifier{f.IsTransient(), "transient"},
	)
	sb.WriteString(f.Type())
	sb.WriteString(" ")
	sb.WriteString(f.name)
	return sb.String()
}

func (f *FieldInfo) String() string {
	return f.FullSignature()
}

const (
	constructorName       = "<init>"
	staticInitializerName = "<clinit>"
)

type MethodInfo struct {
	featureInfo
}

func (m *MethodInfo) IsSynchronized() bool { return m.accessFlags.IsSynchronized() }
func (m *MethodInfo) IsBridge() bool       { return m.accessFlags.IsBridge() }
func (m *MethodInfo) IsVarargs() bool      { return m.accessFlags.IsVarargs() }
func (m *MethodInfo) IsNative() bool       { return m.accessFlags.IsNative() }
func (m *MethodInfo) IsAbstract() bool     { return m.accessFlags.IsAbstract() }
func (m *MethodInfo) IsStrict() bool       { return m.accessFlags.IsStrict() }

func (m *MethodInfo) IsConstructor() bool       { return m.name == constructorName }
func (m *MethodInfo) IsStaticInitializer() bool { return m.name == staticInitializerName }

// ReturnType is empty for void methods.
func (m *MethodInfo) ReturnType() string {
	return ReturnTypeFromDescriptor(m.descriptor)
}

// Exceptions lists the declared thrown classes in source form.
func (m *MethodInfo) Exceptions() []string {
	attr := findAttribute[*ExceptionsAttribute](m.attributes)
	if attr == nil {
		return nil
	}
	names := make([]string, len(attr.Exceptions))
	for i, c := range attr.Exceptions {
		names[i] = c.ClassName()
	}
	return names
}

func (m *MethodInfo) Code() *CodeAttribute {
	return findAttribute[*CodeAttribute](m.attributes)
}

func (m *MethodInfo) Parameters() []*MethodParameter {
	if attr := findAttribute[*MethodParametersAttribute](m.attributes); attr != nil {
		return attr.Parameters
	}
	return nil
}

// Signature is the unqualified method signature. Constructors use the
// simple class name and the static initializer renders as "static {}".
func (m *MethodInfo) Signature() string {
	switch {
	case m.IsConstructor():
		return m.classfile.SimpleName() + SignatureFromDescriptor(m.descriptor)
	case m.IsStaticInitializer():
		return "static {}"
	default:
		return m.name + SignatureFromDescriptor(m.descriptor)
	}
}

func (m *MethodInfo) FullSignature() string {
	return m.classfile.ClassName() + "." + m.Signature()
}

func (m *MethodInfo) Declaration() string {
	if m.IsStaticInitializer() {
		return m.Signature()
	}

	var sb strings.Builder
	m.writeModifiers(&sb,
		modifier{m.IsSynchronized(), "synchronized"},
		modifier{m.IsNative(), "native"},
		modifier{m.IsAbstract(), "abstract"},
	)

	if !m.IsConstructor() {
		if rt := m.ReturnType(); rt != "" {
			sb.WriteString(rt)
		} else {
			sb.WriteString("void")
		}
		sb.WriteString(" ")
	}

	sb.WriteString(m.Signature())

	if exceptions := m.Exceptions(); len(exceptions) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(exceptions, ", "))
	}
	return sb.String()
}

func (m *MethodInfo) String() string {
	return m.FullSignature()
}
