package classfile

// AttributeInfo is implemented by every attribute variant. Attributes with
// an unrecognized name decode as *CustomAttribute.
type AttributeInfo interface {
	AttributeName() string
	AttributeLength() uint32
	Accept(v Visitor)
}

// AttributeHeader is the name and declared length shared by all attributes.
type AttributeHeader struct {
	NameIndex uint16
	Name      string
	Length    uint32
}

func (h AttributeHeader) AttributeName() string   { return h.Name }
func (h AttributeHeader) AttributeLength() uint32 { return h.Length }

func findAttribute[T AttributeInfo](attrs []AttributeInfo) T {
	var zero T
	for _, attr := range attrs {
		if typed, ok := attr.(T); ok {
			return typed
		}
	}
	return zero
}

func findAttributeByName(attrs []AttributeInfo, name string) AttributeInfo {
	for _, attr := range attrs {
		if attr.AttributeName() == name {
			return attr
		}
	}
	return nil
}

// CustomAttribute keeps the payload of an attribute this package does not
// decode, byte for byte.
type CustomAttribute struct {
	AttributeHeader
	Info []byte
}

type ConstantValueAttribute struct {
	AttributeHeader
	ValueIndex uint16
	Value      ConstantPoolEntry
}

type CodeAttribute struct {
	AttributeHeader
	MaxStack          uint16
	MaxLocals         uint16
	Code              []byte
	Instructions      []*Instruction
	ExceptionHandlers []*ExceptionHandler
	Attributes        []AttributeInfo
	method            *MethodInfo
}

func (a *CodeAttribute) Method() *MethodInfo { return a.method }

func (a *CodeAttribute) LineNumbers() []*LineNumber {
	if attr := findAttribute[*LineNumberTableAttribute](a.Attributes); attr != nil {
		return attr.LineNumbers
	}
	return nil
}

func (a *CodeAttribute) LocalVariables() []*LocalVariable {
	if attr := findAttribute[*LocalVariableTableAttribute](a.Attributes); attr != nil {
		return attr.LocalVariables
	}
	return nil
}

// LineNumberAt returns the source line for a code offset, or 0 when the
// method has no line number table.
func (a *CodeAttribute) LineNumberAt(pc int) int {
	line, best := 0, -1
	for _, ln := range a.LineNumbers() {
		if int(ln.StartPC) <= pc && int(ln.StartPC) > best {
			line, best = int(ln.LineNumber), int(ln.StartPC)
		}
	}
	return line
}

// ExceptionHandler is one entry of a Code attribute's exception table.
// CatchType is nil for handlers that catch everything (finally blocks).
type ExceptionHandler struct {
	StartPC        uint16
	EndPC          uint16
	HandlerPC      uint16
	CatchTypeIndex uint16
	CatchType      *ConstantClassInfo
}

func (h *ExceptionHandler) CatchTypeName() string {
	if h.CatchType == nil {
		return ""
	}
	return h.CatchType.ClassName()
}

type ExceptionsAttribute struct {
	AttributeHeader
	ExceptionIndexes []uint16
	Exceptions       []*ConstantClassInfo
}

type InnerClassesAttribute struct {
	AttributeHeader
	Classes []*InnerClass
}

// InnerClass is one record of an InnerClasses attribute. OuterClassInfo is
// nil for local and anonymous classes and InnerName is empty for anonymous
// ones.
type InnerClass struct {
	InnerClassInfoIndex uint16
	OuterClassInfoIndex uint16
	InnerNameIndex      uint16
	AccessFlags         AccessFlags
	InnerClassInfo      *ConstantClassInfo
	OuterClassInfo      *ConstantClassInfo
	InnerName           string
	classfile           *Classfile
}

// Classfile returns the class file whose InnerClasses attribute holds this
// record.
func (c *InnerClass) Classfile() *Classfile { return c.classfile }

func (c *InnerClass) InnerClassName() string {
	return c.InnerClassInfo.ClassName()
}

func (c *InnerClass) OuterClassName() string {
	if c.OuterClassInfo == nil {
		return ""
	}
	return c.OuterClassInfo.ClassName()
}

func (c *InnerClass) IsAnonymous() bool { return c.InnerNameIndex == 0 }
func (c *InnerClass) IsMember() bool    { return c.OuterClassInfoIndex != 0 }

type EnclosingMethodAttribute struct {
	AttributeHeader
	ClassIndex  uint16
	MethodIndex uint16
	Class       *ConstantClassInfo
	// Method is nil when the class is not enclosed by a method or
	// constructor, e.g. in an initializer.
	Method *ConstantNameAndTypeInfo
}

type SyntheticAttribute struct {
	AttributeHeader
}

type DeprecatedAttribute struct {
	AttributeHeader
}

type SignatureAttribute struct {
	AttributeHeader
	SignatureIndex uint16
	Signature      string
}

type SourceFileAttribute struct {
	AttributeHeader
	SourceFileIndex uint16
	SourceFile      string
}

type SourceDebugExtensionAttribute struct {
	AttributeHeader
	DebugExtension string
}

type LineNumberTableAttribute struct {
	AttributeHeader
	LineNumbers []*LineNumber
}

type LineNumber struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	AttributeHeader
	LocalVariables []*LocalVariable
}

type LocalVariable struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
	Name            string
	Descriptor      string
	method          *MethodInfo
}

// Method returns the method whose Code attribute declares the variable.
func (v *LocalVariable) Method() *MethodInfo { return v.method }

func (v *LocalVariable) Type() string {
	return TypeFromDescriptor(v.Descriptor)
}

type LocalVariableTypeTableAttribute struct {
	AttributeHeader
	LocalVariableTypes []*LocalVariableType
}

type LocalVariableType struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
	Name           string
	Signature      string
	method         *MethodInfo
}

func (v *LocalVariableType) Method() *MethodInfo { return v.method }

type BootstrapMethodsAttribute struct {
	AttributeHeader
	BootstrapMethods []*BootstrapMethod
}

type BootstrapMethod struct {
	MethodRefIndex  uint16
	MethodRef       *ConstantMethodHandleInfo
	ArgumentIndexes []uint16
	Arguments       []ConstantPoolEntry
}

type MethodParametersAttribute struct {
	AttributeHeader
	Parameters []*MethodParameter
}

// MethodParameter has an empty Name when NameIndex is 0.
type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
	Name        string
}

type ModuleAttribute struct {
	AttributeHeader
	ModuleNameIndex    uint16
	ModuleFlags        AccessFlags
	ModuleVersionIndex uint16
	Module             *ConstantModuleInfo
	ModuleVersion      string
	Requires           []*ModuleRequires
	Exports            []*ModuleExports
	Opens              []*ModuleOpens
	Uses               []*ModuleUses
	Provides           []*ModuleProvides
}

func (a *ModuleAttribute) ModuleName() string { return a.Module.Name }

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        AccessFlags
	RequiresVersionIndex uint16
	Requires             *ConstantModuleInfo
	RequiresVersion      string
}

type ModuleExports struct {
	ExportsIndex     uint16
	ExportsFlags     AccessFlags
	ExportsToIndexes []uint16
	Exports          *ConstantPackageInfo
	ExportsTo        []*ConstantModuleInfo
}

type ModuleOpens struct {
	OpensIndex     uint16
	OpensFlags     AccessFlags
	OpensToIndexes []uint16
	Opens          *ConstantPackageInfo
	OpensTo        []*ConstantModuleInfo
}

type ModuleUses struct {
	UsesIndex uint16
	Uses      *ConstantClassInfo
}

type ModuleProvides struct {
	ProvidesIndex       uint16
	ProvidesWithIndexes []uint16
	Provides            *ConstantClassInfo
	ProvidesWith        []*ConstantClassInfo
}

type ModulePackagesAttribute struct {
	AttributeHeader
	PackageIndexes []uint16
	Packages       []*ConstantPackageInfo
}

type ModuleMainClassAttribute struct {
	AttributeHeader
	MainClassIndex uint16
	MainClass      *ConstantClassInfo
}

type NestHostAttribute struct {
	AttributeHeader
	HostClassIndex uint16
	HostClass      *ConstantClassInfo
}

type NestMembersAttribute struct {
	AttributeHeader
	ClassIndexes []uint16
	Classes      []*ConstantClassInfo
}

type PermittedSubclassesAttribute struct {
	AttributeHeader
	ClassIndexes []uint16
	Classes      []*ConstantClassInfo
}

type RecordAttribute struct {
	AttributeHeader
	Components []*RecordComponent
}

type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      string
	Attributes      []AttributeInfo
}

type StackMapTableAttribute struct {
	AttributeHeader
	Frames []*StackMapFrame
}

type FrameKind uint8

const (
	SameFrame FrameKind = iota
	SameLocals1StackItemFrame
	SameLocals1StackItemFrameExtended
	ChopFrame
	SameFrameExtended
	AppendFrame
	FullFrame
)

type StackMapFrame struct {
	FrameType   uint8
	Kind        FrameKind
	OffsetDelta uint16
	Locals      []*VerificationType
	Stack       []*VerificationType
}

// Verification type tags.
const (
	ItemTop               uint8 = 0
	ItemInteger           uint8 = 1
	ItemFloat             uint8 = 2
	ItemDouble            uint8 = 3
	ItemLong              uint8 = 4
	ItemNull              uint8 = 5
	ItemUninitializedThis uint8 = 6
	ItemObject            uint8 = 7
	ItemUninitialized     uint8 = 8
)

// VerificationType carries Class for ItemObject and Offset for
// ItemUninitialized.
type VerificationType struct {
	Tag        uint8
	ClassIndex uint16
	Class      *ConstantClassInfo
	Offset     uint16
}

// AnnotationsAttribute is RuntimeVisibleAnnotations or
// RuntimeInvisibleAnnotations.
type AnnotationsAttribute struct {
	AttributeHeader
	Visible     bool
	Annotations []*Annotation
}

// ParameterAnnotationsAttribute is RuntimeVisibleParameterAnnotations or
// RuntimeInvisibleParameterAnnotations.
type ParameterAnnotationsAttribute struct {
	AttributeHeader
	Visible    bool
	Parameters []*ParameterAnnotation
}

type ParameterAnnotation struct {
	Annotations []*Annotation
}

// TypeAnnotationsAttribute is RuntimeVisibleTypeAnnotations or
// RuntimeInvisibleTypeAnnotations.
type TypeAnnotationsAttribute struct {
	AttributeHeader
	Visible     bool
	Annotations []*TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	AttributeHeader
	DefaultValue *ElementValue
}

type Annotation struct {
	TypeIndex         uint16
	Type              string
	ElementValuePairs []*ElementValuePair
}

// TypeName returns the annotation interface in source form.
func (a *Annotation) TypeName() string {
	return TypeFromDescriptor(a.Type)
}

type ElementValuePair struct {
	ElementNameIndex uint16
	ElementName      string
	Value            *ElementValue
}

// ElementValue is one annotation element value. Which fields are set
// depends on Tag: B C D F I J S Z s use Const, e uses the Enum fields, c
// uses ClassInfo, @ uses Annotation and [ uses Values.
type ElementValue struct {
	Tag                byte
	ConstValueIndex    uint16
	Const              ConstantPoolEntry
	EnumTypeNameIndex  uint16
	EnumConstNameIndex uint16
	EnumTypeName       string
	EnumConstName      string
	ClassInfoIndex     uint16
	ClassInfo          string
	Annotation         *Annotation
	Values             []*ElementValue
}

type TypeAnnotation struct {
	TargetType uint8
	Target     TypeAnnotationTarget
	TargetPath []TypePathEntry
	Annotation
}

// TypeAnnotationTarget is the decoded target_info union; only the fields
// relevant to the TargetType are set.
type TypeAnnotationTarget struct {
	TypeParameterIndex   uint8
	SupertypeIndex       uint16
	BoundIndex           uint8
	FormalParameterIndex uint8
	ThrowsTypeIndex      uint16
	LocalVariables       []LocalVariableTarget
	ExceptionTableIndex  uint16
	Offset               uint16
	TypeArgumentIndex    uint8
}

type LocalVariableTarget struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}
