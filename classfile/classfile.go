package classfile

import "strings"

// Classfile is a fully decoded class file. Instances are only produced by
// Parse and are never partially constructed.
type Classfile struct {
	minorVersion uint16
	majorVersion uint16
	constantPool ConstantPool
	accessFlags  AccessFlags
	thisClass    uint16
	superClass   uint16
	class        *ConstantClassInfo
	super        *ConstantClassInfo
	interfaces   []*ConstantClassInfo
	fields       []*FieldInfo
	methods      []*MethodInfo
	attributes   []AttributeInfo
}

func (cf *Classfile) MinorVersion() uint16             { return cf.minorVersion }
func (cf *Classfile) MajorVersion() uint16             { return cf.majorVersion }
func (cf *Classfile) ConstantPool() ConstantPool       { return cf.constantPool }
func (cf *Classfile) AccessFlags() AccessFlags         { return cf.accessFlags }
func (cf *Classfile) Interfaces() []*ConstantClassInfo { return cf.interfaces }
func (cf *Classfile) Fields() []*FieldInfo             { return cf.fields }
func (cf *Classfile) Methods() []*MethodInfo           { return cf.methods }
func (cf *Classfile) Attributes() []AttributeInfo      { return cf.attributes }

// RawClass returns the this_class constant pool index.
func (cf *Classfile) RawClass() uint16 { return cf.thisClass }

// RawSuperclass returns the super_class constant pool index, 0 when absent.
func (cf *Classfile) RawSuperclass() uint16 { return cf.superClass }

func (cf *Classfile) Class() *ConstantClassInfo { return cf.class }

// Superclass returns nil for java.lang.Object and module-info.
func (cf *Classfile) Superclass() *ConstantClassInfo { return cf.super }

func (cf *Classfile) ClassName() string {
	return cf.class.ClassName()
}

func (cf *Classfile) SuperclassName() string {
	if cf.super == nil {
		return ""
	}
	return cf.super.ClassName()
}

func (cf *Classfile) InterfaceNames() []string {
	names := make([]string, len(cf.interfaces))
	for i, iface := range cf.interfaces {
		names[i] = iface.ClassName()
	}
	return names
}

func (cf *Classfile) PackageName() string {
	return PackageName(cf.ClassName())
}

func (cf *Classfile) SimpleName() string {
	return SimpleClassName(cf.ClassName())
}

func (cf *Classfile) IsClass() bool {
	return !cf.accessFlags.IsInterface() && !cf.accessFlags.IsModule()
}

func (cf *Classfile) IsInterface() bool {
	return cf.accessFlags.IsInterface() && !cf.accessFlags.IsAnnotation()
}

func (cf *Classfile) IsAnnotation() bool { return cf.accessFlags.IsAnnotation() }
func (cf *Classfile) IsEnum() bool       { return cf.accessFlags.IsEnum() }
func (cf *Classfile) IsModule() bool     { return cf.accessFlags.IsModule() }
func (cf *Classfile) IsPublic() bool     { return cf.accessFlags.IsPublic() }
func (cf *Classfile) IsFinal() bool      { return cf.accessFlags.IsFinal() }
func (cf *Classfile) IsAbstract() bool   { return cf.accessFlags.IsAbstract() }
func (cf *Classfile) IsSynthetic() bool  { return cf.accessFlags.IsSynthetic() }

func (cf *Classfile) IsDeprecated() bool {
	return findAttribute[*DeprecatedAttribute](cf.attributes) != nil
}

func (cf *Classfile) Field(name string) *FieldInfo {
	for _, f := range cf.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Method finds a method by name and, when descriptor is non-empty, by
// descriptor.
func (cf *Classfile) Method(name, descriptor string) *MethodInfo {
	for _, m := range cf.methods {
		if m.Name() == name && (descriptor == "" || m.Descriptor() == descriptor) {
			return m
		}
	}
	return nil
}

func (cf *Classfile) MethodsNamed(name string) []*MethodInfo {
	var methods []*MethodInfo
	for _, m := range cf.methods {
		if m.Name() == name {
			methods = append(methods, m)
		}
	}
	return methods
}

func (cf *Classfile) Attribute(name string) AttributeInfo {
	return findAttributeByName(cf.attributes, name)
}

func (cf *Classfile) SourceFile() string {
	if sf := findAttribute[*SourceFileAttribute](cf.attributes); sf != nil {
		return sf.SourceFile
	}
	return ""
}

func (cf *Classfile) InnerClasses() []*InnerClass {
	if ic := findAttribute[*InnerClassesAttribute](cf.attributes); ic != nil {
		return ic.Classes
	}
	return nil
}

// Declaration renders the class header, e.g.
// "public final class a.B extends a.C implements a.D, a.E".
func (cf *Classfile) Declaration() string {
	var sb strings.Builder
	if cf.accessFlags.IsPublic() {
		sb.WriteString("public ")
	}
	if cf.accessFlags.IsAbstract() && !cf.accessFlags.IsInterface() {
		sb.WriteString("abstract ")
	}
	if cf.accessFlags.IsFinal() {
		sb.WriteString("final ")
	}
	switch {
	case cf.IsModule():
		sb.WriteString("module ")
	case cf.IsAnnotation():
		sb.WriteString("@interface ")
	case cf.IsInterface():
		sb.WriteString("interface ")
	case cf.IsEnum():
		sb.WriteString("enum ")
	default:
		sb.WriteString("class ")
	}
	sb.WriteString(cf.ClassName())

	if cf.IsInterface() {
		if len(cf.interfaces) > 0 {
			sb.WriteString(" extends ")
			sb.WriteString(strings.Join(cf.InterfaceNames(), ", "))
		}
		return sb.String()
	}
	if super := cf.SuperclassName(); super != "" && super != "java.lang.Object" {
		sb.WriteString(" extends ")
		sb.WriteString(super)
	}
	if len(cf.interfaces) > 0 {
		sb.WriteString(" implements ")
		sb.WriteString(strings.Join(cf.InterfaceNames(), ", "))
	}
	return sb.String()
}

func (cf *Classfile) String() string {
	return cf.ClassName()
}
