package classfile

// Visitor is implemented by anything that walks a parsed class file. Every
// node's Accept calls the matching Visit method with itself.
type Visitor interface {
	VisitClassfiles(classfiles []*Classfile)
	VisitClassfile(cf *Classfile)
	VisitConstantPool(cp ConstantPool)

	VisitConstantUtf8Info(entry *ConstantUtf8Info)
	VisitConstantIntegerInfo(entry *ConstantIntegerInfo)
	VisitConstantFloatInfo(entry *ConstantFloatInfo)
	VisitConstantLongInfo(entry *ConstantLongInfo)
	VisitConstantDoubleInfo(entry *ConstantDoubleInfo)
	VisitConstantClassInfo(entry *ConstantClassInfo)
	VisitConstantStringInfo(entry *ConstantStringInfo)
	VisitConstantNameAndTypeInfo(entry *ConstantNameAndTypeInfo)
	VisitConstantFieldrefInfo(entry *ConstantFieldrefInfo)
	VisitConstantMethodrefInfo(entry *ConstantMethodrefInfo)
	VisitConstantInterfaceMethodrefInfo(entry *ConstantInterfaceMethodrefInfo)
	VisitConstantMethodHandleInfo(entry *ConstantMethodHandleInfo)
	VisitConstantMethodTypeInfo(entry *ConstantMethodTypeInfo)
	VisitConstantDynamicInfo(entry *ConstantDynamicInfo)
	VisitConstantInvokeDynamicInfo(entry *ConstantInvokeDynamicInfo)
	VisitConstantModuleInfo(entry *ConstantModuleInfo)
	VisitConstantPackageInfo(entry *ConstantPackageInfo)

	VisitField(field *FieldInfo)
	VisitMethod(method *MethodInfo)

	VisitCustomAttribute(attr *CustomAttribute)
	VisitConstantValueAttribute(attr *ConstantValueAttribute)
	VisitCodeAttribute(attr *CodeAttribute)
	VisitExceptionsAttribute(attr *ExceptionsAttribute)
	VisitInnerClassesAttribute(attr *InnerClassesAttribute)
	VisitEnclosingMethodAttribute(attr *EnclosingMethodAttribute)
	VisitSyntheticAttribute(attr *SyntheticAttribute)
	VisitDeprecatedAttribute(attr *DeprecatedAttribute)
	VisitSignatureAttribute(attr *SignatureAttribute)
	VisitSourceFileAttribute(attr *SourceFileAttribute)
	VisitSourceDebugExtensionAttribute(attr *SourceDebugExtensionAttribute)
	VisitLineNumberTableAttribute(attr *LineNumberTableAttribute)
	VisitLocalVariableTableAttribute(attr *LocalVariableTableAttribute)
	VisitLocalVariableTypeTableAttribute(attr *LocalVariableTypeTableAttribute)
	VisitBootstrapMethodsAttribute(attr *BootstrapMethodsAttribute)
	VisitMethodParametersAttribute(attr *MethodParametersAttribute)
	VisitModuleAttribute(attr *ModuleAttribute)
	VisitModulePackagesAttribute(attr *ModulePackagesAttribute)
	VisitModuleMainClassAttribute(attr *ModuleMainClassAttribute)
	VisitNestHostAttribute(attr *NestHostAttribute)
	VisitNestMembersAttribute(attr *NestMembersAttribute)
	VisitPermittedSubclassesAttribute(attr *PermittedSubclassesAttribute)
	VisitRecordAttribute(attr *RecordAttribute)
	VisitStackMapTableAttribute(attr *StackMapTableAttribute)
	VisitAnnotationsAttribute(attr *AnnotationsAttribute)
	VisitParameterAnnotationsAttribute(attr *ParameterAnnotationsAttribute)
	VisitTypeAnnotationsAttribute(attr *TypeAnnotationsAttribute)
	VisitAnnotationDefaultAttribute(attr *AnnotationDefaultAttribute)

	VisitInstruction(insn *Instruction)
	VisitExceptionHandler(handler *ExceptionHandler)
	VisitInnerClass(inner *InnerClass)
	VisitLineNumber(line *LineNumber)
	VisitLocalVariable(local *LocalVariable)
	VisitLocalVariableType(local *LocalVariableType)
	VisitBootstrapMethod(method *BootstrapMethod)
	VisitMethodParameter(param *MethodParameter)
	VisitModuleRequires(requires *ModuleRequires)
	VisitModuleExports(exports *ModuleExports)
	VisitModuleOpens(opens *ModuleOpens)
	VisitModuleUses(uses *ModuleUses)
	VisitModuleProvides(provides *ModuleProvides)
	VisitRecordComponent(component *RecordComponent)
	VisitStackMapFrame(frame *StackMapFrame)
	VisitAnnotation(annotation *Annotation)
	VisitParameterAnnotation(param *ParameterAnnotation)
	VisitTypeAnnotation(annotation *TypeAnnotation)
	VisitElementValuePair(pair *ElementValuePair)
	VisitElementValue(value *ElementValue)
}

func (cp ConstantPool) Accept(v Visitor) { v.VisitConstantPool(cp) }
func (cf *Classfile) Accept(v Visitor)   { v.VisitClassfile(cf) }

func (c *ConstantUtf8Info) Accept(v Visitor)               { v.VisitConstantUtf8Info(c) }
func (c *ConstantIntegerInfo) Accept(v Visitor)            { v.VisitConstantIntegerInfo(c) }
func (c *ConstantFloatInfo) Accept(v Visitor)              { v.VisitConstantFloatInfo(c) }
func (c *ConstantLongInfo) Accept(v Visitor)               { v.VisitConstantLongInfo(c) }
func (c *ConstantDoubleInfo) Accept(v Visitor)             { v.VisitConstantDoubleInfo(c) }
func (c *ConstantClassInfo) Accept(v Visitor)              { v.VisitConstantClassInfo(c) }
func (c *ConstantStringInfo) Accept(v Visitor)             { v.VisitConstantStringInfo(c) }
func (c *ConstantNameAndTypeInfo) Accept(v Visitor)        { v.VisitConstantNameAndTypeInfo(c) }
func (c *ConstantFieldrefInfo) Accept(v Visitor)           { v.VisitConstantFieldrefInfo(c) }
func (c *ConstantMethodrefInfo) Accept(v Visitor)          { v.VisitConstantMethodrefInfo(c) }
func (c *ConstantInterfaceMethodrefInfo) Accept(v Visitor) { v.VisitConstantInterfaceMethodrefInfo(c) }
func (c *ConstantMethodHandleInfo) Accept(v Visitor)       { v.VisitConstantMethodHandleInfo(c) }
func (c *ConstantMethodTypeInfo) Accept(v Visitor)         { v.VisitConstantMethodTypeInfo(c) }
func (c *ConstantDynamicInfo) Accept(v Visitor)            { v.VisitConstantDynamicInfo(c) }
func (c *ConstantInvokeDynamicInfo) Accept(v Visitor)      { v.VisitConstantInvokeDynamicInfo(c) }
func (c *ConstantModuleInfo) Accept(v Visitor)             { v.VisitConstantModuleInfo(c) }
func (c *ConstantPackageInfo) Accept(v Visitor)            { v.VisitConstantPackageInfo(c) }

func (f *FieldInfo) Accept(v Visitor)  { v.VisitField(f) }
func (m *MethodInfo) Accept(v Visitor) { v.VisitMethod(m) }

func (a *CustomAttribute) Accept(v Visitor)               { v.VisitCustomAttribute(a) }
func (a *ConstantValueAttribute) Accept(v Visitor)        { v.VisitConstantValueAttribute(a) }
func (a *CodeAttribute) Accept(v Visitor)                 { v.VisitCodeAttribute(a) }
func (a *ExceptionsAttribute) Accept(v Visitor)           { v.VisitExceptionsAttribute(a) }
func (a *InnerClassesAttribute) Accept(v Visitor)         { v.VisitInnerClassesAttribute(a) }
func (a *EnclosingMethodAttribute) Accept(v Visitor)      { v.VisitEnclosingMethodAttribute(a) }
func (a *SyntheticAttribute) Accept(v Visitor)            { v.VisitSyntheticAttribute(a) }
func (a *DeprecatedAttribute) Accept(v Visitor)           { v.VisitDeprecatedAttribute(a) }
func (a *SignatureAttribute) Accept(v Visitor)            { v.VisitSignatureAttribute(a) }
func (a *SourceFileAttribute) Accept(v Visitor)           { v.VisitSourceFileAttribute(a) }
func (a *SourceDebugExtensionAttribute) Accept(v Visitor) { v.VisitSourceDebugExtensionAttribute(a) }
func (a *LineNumberTableAttribute) Accept(v Visitor)      { v.VisitLineNumberTableAttribute(a) }
func (a *LocalVariableTableAttribute) Accept(v Visitor)   { v.VisitLocalVariableTableAttribute(a) }
func (a *LocalVariableTypeTableAttribute) Accept(v Visitor) {
	v.VisitLocalVariableTypeTableAttribute(a)
}
func (a *BootstrapMethodsAttribute) Accept(v Visitor)     { v.VisitBootstrapMethodsAttribute(a) }
func (a *MethodParametersAttribute) Accept(v Visitor)     { v.VisitMethodParametersAttribute(a) }
func (a *ModuleAttribute) Accept(v Visitor)               { v.VisitModuleAttribute(a) }
func (a *ModulePackagesAttribute) Accept(v Visitor)       { v.VisitModulePackagesAttribute(a) }
func (a *ModuleMainClassAttribute) Accept(v Visitor)      { v.VisitModuleMainClassAttribute(a) }
func (a *NestHostAttribute) Accept(v Visitor)             { v.VisitNestHostAttribute(a) }
func (a *NestMembersAttribute) Accept(v Visitor)          { v.VisitNestMembersAttribute(a) }
func (a *PermittedSubclassesAttribute) Accept(v Visitor)  { v.VisitPermittedSubclassesAttribute(a) }
func (a *RecordAttribute) Accept(v Visitor)               { v.VisitRecordAttribute(a) }
func (a *StackMapTableAttribute) Accept(v Visitor)        { v.VisitStackMapTableAttribute(a) }
func (a *AnnotationsAttribute) Accept(v Visitor)          { v.VisitAnnotationsAttribute(a) }
func (a *ParameterAnnotationsAttribute) Accept(v Visitor) { v.VisitParameterAnnotationsAttribute(a) }
func (a *TypeAnnotationsAttribute) Accept(v Visitor)      { v.VisitTypeAnnotationsAttribute(a) }
func (a *AnnotationDefaultAttribute) Accept(v Visitor)    { v.VisitAnnotationDefaultAttribute(a) }

func (i *Instruction) Accept(v Visitor)         { v.VisitInstruction(i) }
func (h *ExceptionHandler) Accept(v Visitor)    { v.VisitExceptionHandler(h) }
func (c *InnerClass) Accept(v Visitor)          { v.VisitInnerClass(c) }
func (l *LineNumber) Accept(v Visitor)          { v.VisitLineNumber(l) }
func (l *LocalVariable) Accept(v Visitor)       { v.VisitLocalVariable(l) }
func (l *LocalVariableType) Accept(v Visitor)   { v.VisitLocalVariableType(l) }
func (m *BootstrapMethod) Accept(v Visitor)     { v.VisitBootstrapMethod(m) }
func (p *MethodParameter) Accept(v Visitor)     { v.VisitMethodParameter(p) }
func (r *ModuleRequires) Accept(v Visitor)      { v.VisitModuleRequires(r) }
func (e *ModuleExports) Accept(v Visitor)       { v.VisitModuleExports(e) }
func (o *ModuleOpens) Accept(v Visitor)         { v.VisitModuleOpens(o) }
func (u *ModuleUses) Accept(v Visitor)          { v.VisitModuleUses(u) }
func (p *ModuleProvides) Accept(v Visitor)      { v.VisitModuleProvides(p) }
func (c *RecordComponent) Accept(v Visitor)     { v.VisitRecordComponent(c) }
func (f *StackMapFrame) Accept(v Visitor)       { v.VisitStackMapFrame(f) }
func (a *Annotation) Accept(v Visitor)          { v.VisitAnnotation(a) }
func (p *ParameterAnnotation) Accept(v Visitor) { v.VisitParameterAnnotation(p) }
func (a *TypeAnnotation) Accept(v Visitor)      { v.VisitTypeAnnotation(a) }
func (p *ElementValuePair) Accept(v Visitor)    { v.VisitElementValuePair(p) }
func (e *ElementValue) Accept(v Visitor)        { v.VisitElementValue(e) }

// VisitorBase implements Visitor with the default traversal: containers
// visit their children in a fixed order and leaves do nothing. Embed it and
// call Bind with the embedding visitor so that children are dispatched to
// the overriding methods.
type VisitorBase struct {
	self         Visitor
	currentCount int
}

func NewVisitorBase(self Visitor) *VisitorBase {
	return &VisitorBase{self: self}
}

func (v *VisitorBase) Bind(self Visitor) { v.self = self }

func (v *VisitorBase) visitor() Visitor {
	if v.self != nil {
		return v.self
	}
	return v
}

// CurrentCount returns the pool index of the entry being visited by
// VisitConstantPool.
func (v *VisitorBase) CurrentCount() int { return v.currentCount }

func (v *VisitorBase) visitAttributes(attrs []AttributeInfo) {
	self := v.visitor()
	for _, attr := range attrs {
		attr.Accept(self)
	}
}

func (v *VisitorBase) visitClasses(classes []*ConstantClassInfo) {
	self := v.visitor()
	for _, c := range classes {
		c.Accept(self)
	}
}

func (v *VisitorBase) visitAnnotations(annotations []*Annotation) {
	self := v.visitor()
	for _, a := range annotations {
		a.Accept(self)
	}
}

func (v *VisitorBase) VisitClassfiles(classfiles []*Classfile) {
	self := v.visitor()
	for _, cf := range classfiles {
		cf.Accept(self)
	}
}

func (v *VisitorBase) VisitClassfile(cf *Classfile) {
	self := v.visitor()
	v.visitAttributes(cf.Attributes())
	for _, f := range cf.Fields() {
		f.Accept(self)
	}
	for _, m := range cf.Methods() {
		m.Accept(self)
	}
}

func (v *VisitorBase) VisitConstantPool(cp ConstantPool) {
	self := v.visitor()
	v.currentCount = 0
	for index, entry := range cp.All() {
		v.currentCount = int(index)
		entry.Accept(self)
	}
}

func (v *VisitorBase) VisitConstantUtf8Info(*ConstantUtf8Info)                             {}
func (v *VisitorBase) VisitConstantIntegerInfo(*ConstantIntegerInfo)                       {}
func (v *VisitorBase) VisitConstantFloatInfo(*ConstantFloatInfo)                           {}
func (v *VisitorBase) VisitConstantLongInfo(*ConstantLongInfo)                             {}
func (v *VisitorBase) VisitConstantDoubleInfo(*ConstantDoubleInfo)                         {}
func (v *VisitorBase) VisitConstantClassInfo(*ConstantClassInfo)                           {}
func (v *VisitorBase) VisitConstantStringInfo(*ConstantStringInfo)                         {}
func (v *VisitorBase) VisitConstantNameAndTypeInfo(*ConstantNameAndTypeInfo)               {}
func (v *VisitorBase) VisitConstantFieldrefInfo(*ConstantFieldrefInfo)                     {}
func (v *VisitorBase) VisitConstantMethodrefInfo(*ConstantMethodrefInfo)                   {}
func (v *VisitorBase) VisitConstantInterfaceMethodrefInfo(*ConstantInterfaceMethodrefInfo) {}
func (v *VisitorBase) VisitConstantMethodHandleInfo(*ConstantMethodHandleInfo)             {}
func (v *VisitorBase) VisitConstantMethodTypeInfo(*ConstantMethodTypeInfo)                 {}
func (v *VisitorBase) VisitConstantDynamicInfo(*ConstantDynamicInfo)                       {}
func (v *VisitorBase) VisitConstantInvokeDynamicInfo(*ConstantInvokeDynamicInfo)           {}
func (v *VisitorBase) VisitConstantModuleInfo(*ConstantModuleInfo)                         {}
func (v *VisitorBase) VisitConstantPackageInfo(*ConstantPackageInfo)                       {}

func (v *VisitorBase) VisitField(field *FieldInfo) {
	v.visitAttributes(field.Attributes())
}

func (v *VisitorBase) VisitMethod(method *MethodInfo) {
	v.visitAttributes(method.Attributes())
}

func (v *VisitorBase) VisitCustomAttribute(*CustomAttribute)                             {}
func (v *VisitorBase) VisitConstantValueAttribute(*ConstantValueAttribute)               {}
func (v *VisitorBase) VisitEnclosingMethodAttribute(*EnclosingMethodAttribute)           {}
func (v *VisitorBase) VisitSyntheticAttribute(*SyntheticAttribute)                       {}
func (v *VisitorBase) VisitDeprecatedAttribute(*DeprecatedAttribute)                     {}
func (v *VisitorBase) VisitSignatureAttribute(*SignatureAttribute)                       {}
func (v *VisitorBase) VisitSourceFileAttribute(*SourceFileAttribute)                     {}
func (v *VisitorBase) VisitSourceDebugExtensionAttribute(*SourceDebugExtensionAttribute) {}
func (v *VisitorBase) VisitModuleMainClassAttribute(*ModuleMainClassAttribute)           {}

func (v *VisitorBase) VisitCodeAttribute(attr *CodeAttribute) {
	self := v.visitor()
	for _, insn := range attr.Instructions {
		insn.Accept(self)
	}
	for _, handler := range attr.ExceptionHandlers {
		handler.Accept(self)
	}
	v.visitAttributes(attr.Attributes)
}

func (v *VisitorBase) VisitExceptionsAttribute(attr *ExceptionsAttribute) {
	v.visitClasses(attr.Exceptions)
}

func (v *VisitorBase) VisitInnerClassesAttribute(attr *InnerClassesAttribute) {
	self := v.visitor()
	for _, c := range attr.Classes {
		c.Accept(self)
	}
}

func (v *VisitorBase) VisitLineNumberTableAttribute(attr *LineNumberTableAttribute) {
	self := v.visitor()
	for _, l := range attr.LineNumbers {
		l.Accept(self)
	}
}

func (v *VisitorBase) VisitLocalVariableTableAttribute(attr *LocalVariableTableAttribute) {
	self := v.visitor()
	for _, l := range attr.LocalVariables {
		l.Accept(self)
	}
}

func (v *VisitorBase) VisitLocalVariableTypeTableAttribute(attr *LocalVariableTypeTableAttribute) {
	self := v.visitor()
	for _, l := range attr.LocalVariableTypes {
		l.Accept(self)
	}
}

func (v *VisitorBase) VisitBootstrapMethodsAttribute(attr *BootstrapMethodsAttribute) {
	self := v.visitor()
	for _, m := range attr.BootstrapMethods {
		m.Accept(self)
	}
}

func (v *VisitorBase) VisitMethodParametersAttribute(attr *MethodParametersAttribute) {
	self := v.visitor()
	for _, p := range attr.Parameters {
		p.Accept(self)
	}
}

func (v *VisitorBase) VisitModuleAttribute(attr *ModuleAttribute) {
	self := v.visitor()
	for _, r := range attr.Requires {
		r.Accept(self)
	}
	for _, e := range attr.Exports {
		e.Accept(self)
	}
	for _, o := range attr.Opens {
		o.Accept(self)
	}
	for _, u := range attr.Uses {
		u.Accept(self)
	}
	for _, p := range attr.Provides {
		p.Accept(self)
	}
}

func (v *VisitorBase) VisitModulePackagesAttribute(attr *ModulePackagesAttribute) {
	self := v.visitor()
	for _, p := range attr.Packages {
		p.Accept(self)
	}
}

func (v *VisitorBase) VisitNestHostAttribute(attr *NestHostAttribute) {
	attr.HostClass.Accept(v.visitor())
}

func (v *VisitorBase) VisitNestMembersAttribute(attr *NestMembersAttribute) {
	v.visitClasses(attr.Classes)
}

func (v *VisitorBase) VisitPermittedSubclassesAttribute(attr *PermittedSubclassesAttribute) {
	v.visitClasses(attr.Classes)
}

func (v *VisitorBase) VisitRecordAttribute(attr *RecordAttribute) {
	self := v.visitor()
	for _, c := range attr.Components {
		c.Accept(self)
	}
}

func (v *VisitorBase) VisitStackMapTableAttribute(attr *StackMapTableAttribute) {
	self := v.visitor()
	for _, f := range attr.Frames {
		f.Accept(self)
	}
}

func (v *VisitorBase) VisitAnnotationsAttribute(attr *AnnotationsAttribute) {
	v.visitAnnotations(attr.Annotations)
}

func (v *VisitorBase) VisitParameterAnnotationsAttribute(attr *ParameterAnnotationsAttribute) {
	self := v.visitor()
	for _, p := range attr.Parameters {
		p.Accept(self)
	}
}

func (v *VisitorBase) VisitTypeAnnotationsAttribute(attr *TypeAnnotationsAttribute) {
	self := v.visitor()
	for _, a := range attr.Annotations {
		a.Accept(self)
	}
}

func (v *VisitorBase) VisitAnnotationDefaultAttribute(attr *AnnotationDefaultAttribute) {
	attr.DefaultValue.Accept(v.visitor())
}

func (v *VisitorBase) VisitInstruction(*Instruction)             {}
func (v *VisitorBase) VisitExceptionHandler(*ExceptionHandler)   {}
func (v *VisitorBase) VisitInnerClass(*InnerClass)               {}
func (v *VisitorBase) VisitLineNumber(*LineNumber)               {}
func (v *VisitorBase) VisitLocalVariable(*LocalVariable)         {}
func (v *VisitorBase) VisitLocalVariableType(*LocalVariableType) {}
func (v *VisitorBase) VisitBootstrapMethod(*BootstrapMethod)     {}
func (v *VisitorBase) VisitMethodParameter(*MethodParameter)     {}
func (v *VisitorBase) VisitModuleRequires(*ModuleRequires)       {}
func (v *VisitorBase) VisitModuleExports(*ModuleExports)         {}
func (v *VisitorBase) VisitModuleOpens(*ModuleOpens)             {}
func (v *VisitorBase) VisitModuleUses(*ModuleUses)               {}
func (v *VisitorBase) VisitModuleProvides(*ModuleProvides)       {}
func (v *VisitorBase) VisitStackMapFrame(*StackMapFrame)         {}

func (v *VisitorBase) VisitRecordComponent(component *RecordComponent) {
	v.visitAttributes(component.Attributes)
}

func (v *VisitorBase) VisitAnnotation(annotation *Annotation) {
	self := v.visitor()
	for _, pair := range annotation.ElementValuePairs {
		pair.Accept(self)
	}
}

func (v *VisitorBase) VisitParameterAnnotation(param *ParameterAnnotation) {
	v.visitAnnotations(param.Annotations)
}

func (v *VisitorBase) VisitTypeAnnotation(annotation *TypeAnnotation) {
	self := v.visitor()
	for _, pair := range annotation.ElementValuePairs {
		pair.Accept(self)
	}
}

func (v *VisitorBase) VisitElementValuePair(pair *ElementValuePair) {
	pair.Value.Accept(v.visitor())
}

func (v *VisitorBase) VisitElementValue(value *ElementValue) {
	self := v.visitor()
	if value.Annotation != nil {
		value.Annotation.Accept(self)
	}
	for _, nested := range value.Values {
		nested.Accept(self)
	}
}
