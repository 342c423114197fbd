package classfile

import (
	"iter"
	"math"
	"strings"
	"unicode/utf16"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
	Accept(v Visitor)
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
	// Name is the internal form, e.g. "java/lang/String" or "[I".
	Name string
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

// ClassName returns the class name in source form, e.g. "java.lang.String"
// or "int[]".
func (c *ConstantClassInfo) ClassName() string {
	return SourceClassName(c.Name)
}

type ConstantStringInfo struct {
	StringIndex uint16
	Value       string
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      string
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

// MemberRef is implemented by the field, method and interface method
// reference entries.
type MemberRef interface {
	ConstantPoolEntry
	ClassInfo() *ConstantClassInfo
	ClassName() string
	Name() string
	Descriptor() string
	FeatureName() string
}

type memberRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
	Class            *ConstantClassInfo
	NameAndType      *ConstantNameAndTypeInfo
}

func (m *memberRef) ClassInfo() *ConstantClassInfo { return m.Class }
func (m *memberRef) ClassName() string             { return m.Class.ClassName() }
func (m *memberRef) Name() string                  { return m.NameAndType.Name }
func (m *memberRef) Descriptor() string            { return m.NameAndType.Descriptor }

type ConstantFieldrefInfo struct {
	memberRef
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

// FeatureName returns "pkg.Class.field".
func (c *ConstantFieldrefInfo) FeatureName() string {
	return c.ClassName() + "." + c.Name()
}

type ConstantMethodrefInfo struct {
	memberRef
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

// FeatureName returns "pkg.Class.method(params)".
func (c *ConstantMethodrefInfo) FeatureName() string {
	return methodFeatureName(c.ClassName(), c.Name(), c.Descriptor())
}

type ConstantInterfaceMethodrefInfo struct {
	memberRef
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

func (c *ConstantInterfaceMethodrefInfo) FeatureName() string {
	return methodFeatureName(c.ClassName(), c.Name(), c.Descriptor())
}

func methodFeatureName(className, name, descriptor string) string {
	if name == "<init>" {
		return className + "." + SimpleClassName(className) + SignatureFromDescriptor(descriptor)
	}
	return className + "." + name + SignatureFromDescriptor(descriptor)
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
	Reference      MemberRef
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
	Descriptor      string
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
	NameAndType              *ConstantNameAndTypeInfo
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
	NameAndType              *ConstantNameAndTypeInfo
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
	Name      string
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
	// Name is the internal form, e.g. "java/lang".
	Name string
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

func (c *ConstantPackageInfo) PackageName() string {
	return strings.ReplaceAll(c.Name, "/", ".")
}

// ConstantPool maps 1-based indices to entries. Slot i-1 holds index i; the
// slot following a Long or Double entry is nil and unusable.
type ConstantPool []ConstantPoolEntry

// Size returns the constant_pool_count read from the class file.
func (cp ConstantPool) Size() int {
	return len(cp) + 1
}

func (cp ConstantPool) Get(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp) || cp[index-1] == nil {
		return nil, &IndexError{Index: index, Size: cp.Size()}
	}
	return cp[index-1], nil
}

// All iterates usable entries in index order.
func (cp ConstantPool) All() iter.Seq2[uint16, ConstantPoolEntry] {
	return func(yield func(uint16, ConstantPoolEntry) bool) {
		for i, entry := range cp {
			if entry == nil {
				continue
			}
			if !yield(uint16(i+1), entry) {
				return
			}
		}
	}
}

func resolve[T ConstantPoolEntry](cp ConstantPool, index uint16, tag ConstantTag) (T, error) {
	var zero T
	entry, err := cp.Get(index)
	if err != nil {
		return zero, err
	}
	typed, ok := entry.(T)
	if !ok {
		return zero, &TypeMismatchError{Index: index, Want: []ConstantTag{tag}, Got: entry.Tag()}
	}
	return typed, nil
}

func (cp ConstantPool) ResolveUtf8(index uint16) (string, error) {
	entry, err := resolve[*ConstantUtf8Info](cp, index, ConstantUtf8)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (cp ConstantPool) ResolveClass(index uint16) (*ConstantClassInfo, error) {
	return resolve[*ConstantClassInfo](cp, index, ConstantClass)
}

// ResolveClassName returns the source-form name of the Class entry at index.
func (cp ConstantPool) ResolveClassName(index uint16) (string, error) {
	entry, err := cp.ResolveClass(index)
	if err != nil {
		return "", err
	}
	if entry.Name == "" {
		name, err := cp.ResolveUtf8(entry.NameIndex)
		if err != nil {
			return "", err
		}
		return SourceClassName(name), nil
	}
	return entry.ClassName(), nil
}

func (cp ConstantPool) ResolveNameAndType(index uint16) (*ConstantNameAndTypeInfo, error) {
	return resolve[*ConstantNameAndTypeInfo](cp, index, ConstantNameAndType)
}

func (cp ConstantPool) ResolveModule(index uint16) (*ConstantModuleInfo, error) {
	return resolve[*ConstantModuleInfo](cp, index, ConstantModule)
}

func (cp ConstantPool) ResolvePackage(index uint16) (*ConstantPackageInfo, error) {
	return resolve[*ConstantPackageInfo](cp, index, ConstantPackage)
}

func (cp ConstantPool) ResolveMethodHandle(index uint16) (*ConstantMethodHandleInfo, error) {
	return resolve[*ConstantMethodHandleInfo](cp, index, ConstantMethodHandle)
}

func (cp ConstantPool) ResolveString(index uint16) (string, error) {
	entry, err := resolve[*ConstantStringInfo](cp, index, ConstantString)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// ResolveConstant returns a loadable constant: Integer, Float, Long, Double
// or String.
func (cp ConstantPool) ResolveConstant(index uint16) (ConstantPoolEntry, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return nil, err
	}
	switch entry.Tag() {
	case ConstantInteger, ConstantFloat, ConstantLong, ConstantDouble, ConstantString:
		return entry, nil
	}
	return nil, &TypeMismatchError{
		Index: index,
		Want:  []ConstantTag{ConstantInteger, ConstantFloat, ConstantLong, ConstantDouble, ConstantString},
		Got:   entry.Tag(),
	}
}

func (cp ConstantPool) resolveMemberRef(index uint16, tags ...ConstantTag) (MemberRef, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if entry.Tag() == tag {
			return entry.(MemberRef), nil
		}
	}
	return nil, &TypeMismatchError{Index: index, Want: tags, Got: entry.Tag()}
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.malformed("constant pool count", r.err)
	}
	if count == 0 {
		return nil, r.malformed("constant pool count", ErrTruncated)
	}

	cp := make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, r.malformed("constant pool entry "+itoa(int(i)), err)
		}
		cp[i-1] = entry
		if entry.Tag().wide() {
			i++
		}
	}

	if err := cp.link(); err != nil {
		return nil, r.malformed("constant pool", err)
	}
	return cp, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, r.err
	}

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(uint32(length)))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		high, low := r.readU4(), r.readU4()
		entry = &ConstantLongInfo{Value: int64(uint64(high)<<32 | uint64(low))}
	case ConstantDouble:
		high, low := r.readU4(), r.readU4()
		entry = &ConstantDoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref:
		entry = &ConstantFieldrefInfo{memberRef{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}}
	case ConstantMethodref:
		entry = &ConstantMethodrefInfo{memberRef{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}}
	case ConstantInterfaceMethodref:
		entry = &ConstantInterfaceMethodrefInfo{memberRef{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(r.readU1()), ReferenceIndex: r.readU2()}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic:
		entry = &ConstantDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInvokeDynamic:
		entry = &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantModule:
		entry = &ConstantModuleInfo{NameIndex: r.readU2()}
	case ConstantPackage:
		entry = &ConstantPackageInfo{NameIndex: r.readU2()}
	default:
		return nil, ErrUnknownTag
	}

	if r.err != nil {
		return nil, r.err
	}
	return entry, nil
}

// link resolves every cross-reference inside the pool once all entries have
// been read, so forward references are legal and bad ones fail the parse.
func (cp ConstantPool) link() error {
	for index, entry := range cp.All() {
		if err := cp.linkEntry(entry); err != nil {
			return &linkError{index: index, err: err}
		}
	}
	return nil
}

func (cp ConstantPool) linkEntry(entry ConstantPoolEntry) error {
	var err error
	switch e := entry.(type) {
	case *ConstantClassInfo:
		e.Name, err = cp.ResolveUtf8(e.NameIndex)
	case *ConstantStringInfo:
		e.Value, err = cp.ResolveUtf8(e.StringIndex)
	case *ConstantNameAndTypeInfo:
		if e.Name, err = cp.ResolveUtf8(e.NameIndex); err == nil {
			e.Descriptor, err = cp.ResolveUtf8(e.DescriptorIndex)
		}
	case *ConstantFieldrefInfo:
		err = cp.linkMemberRef(&e.memberRef)
	case *ConstantMethodrefInfo:
		err = cp.linkMemberRef(&e.memberRef)
	case *ConstantInterfaceMethodrefInfo:
		err = cp.linkMemberRef(&e.memberRef)
	case *ConstantMethodHandleInfo:
		e.Reference, err = cp.resolveMemberRef(e.ReferenceIndex, methodHandleTargets(e.ReferenceKind)...)
	case *ConstantMethodTypeInfo:
		e.Descriptor, err = cp.ResolveUtf8(e.DescriptorIndex)
	case *ConstantDynamicInfo:
		e.NameAndType, err = cp.ResolveNameAndType(e.NameAndTypeIndex)
	case *ConstantInvokeDynamicInfo:
		e.NameAndType, err = cp.ResolveNameAndType(e.NameAndTypeIndex)
	case *ConstantModuleInfo:
		e.Name, err = cp.ResolveUtf8(e.NameIndex)
	case *ConstantPackageInfo:
		e.Name, err = cp.ResolveUtf8(e.NameIndex)
	}
	return err
}

func (cp ConstantPool) linkMemberRef(m *memberRef) error {
	var err error
	if m.Class, err = cp.ResolveClass(m.ClassIndex); err != nil {
		return err
	}
	m.NameAndType, err = cp.ResolveNameAndType(m.NameAndTypeIndex)
	return err
}

func methodHandleTargets(kind MethodHandleKind) []ConstantTag {
	switch kind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		return []ConstantTag{ConstantFieldref}
	case RefInvokeVirtual, RefNewInvokeSpecial:
		return []ConstantTag{ConstantMethodref}
	case RefInvokeStatic, RefInvokeSpecial:
		return []ConstantTag{ConstantMethodref, ConstantInterfaceMethodref}
	case RefInvokeInterface:
		return []ConstantTag{ConstantInterfaceMethodref}
	}
	return nil
}

type linkError struct {
	index uint16
	err   error
}

func (e *linkError) Error() string {
	return "entry " + itoa(int(e.index)) + ": " + e.err.Error()
}

func (e *linkError) Unwrap() error { return e.err }

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as surrogate pairs of three bytes each.
func decodeModifiedUtf8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
