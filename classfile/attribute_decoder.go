package classfile

import (
	"fmt"
	"strings"
)

// attributeReader decodes attribute lists. Pool references are resolved as
// they are read; the first resolution failure becomes the sticky error of
// the underlying reader.
type attributeReader struct {
	*reader
	cp        ConstantPool
	classfile *Classfile
	method    *MethodInfo
}

type attributeDecoder func(r *attributeReader, h AttributeHeader) AttributeInfo

func decoderFor(name string) attributeDecoder {
	switch name {
	case AttrConstantValue:
		return decodeConstantValue
	case AttrCode:
		return decodeCode
	case AttrStackMapTable:
		return decodeStackMapTable
	case AttrExceptions:
		return decodeExceptions
	case AttrInnerClasses:
		return decodeInnerClasses
	case AttrEnclosingMethod:
		return decodeEnclosingMethod
	case AttrSynthetic:
		return func(_ *attributeReader, h AttributeHeader) AttributeInfo {
			return &SyntheticAttribute{AttributeHeader: h}
		}
	case AttrDeprecated:
		return func(_ *attributeReader, h AttributeHeader) AttributeInfo {
			return &DeprecatedAttribute{AttributeHeader: h}
		}
	case AttrSignature:
		return decodeSignature
	case AttrSourceFile:
		return decodeSourceFile
	case AttrSourceDebugExtension:
		return decodeSourceDebugExtension
	case AttrLineNumberTable:
		return decodeLineNumberTable
	case AttrLocalVariableTable:
		return decodeLocalVariableTable
	case AttrLocalVariableTypeTable:
		return decodeLocalVariableTypeTable
	case AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations:
		return decodeAnnotations
	case AttrRuntimeVisibleParameterAnnotations, AttrRuntimeInvisibleParameterAnnotations:
		return decodeParameterAnnotations
	case AttrRuntimeVisibleTypeAnnotations, AttrRuntimeInvisibleTypeAnnotations:
		return decodeTypeAnnotations
	case AttrAnnotationDefault:
		return decodeAnnotationDefault
	case AttrBootstrapMethods:
		return decodeBootstrapMethods
	case AttrMethodParameters:
		return decodeMethodParameters
	case AttrModule:
		return decodeModule
	case AttrModulePackages:
		return decodeModulePackages
	case AttrModuleMainClass:
		return decodeModuleMainClass
	case AttrNestHost:
		return decodeNestHost
	case AttrNestMembers:
		return decodeNestMembers
	case AttrRecord:
		return decodeRecord
	case AttrPermittedSubclasses:
		return decodePermittedSubclasses
	}
	return nil
}

func (r *attributeReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *attributeReader) readAttributes() []AttributeInfo {
	count := r.readU2()
	if r.err != nil {
		return nil
	}
	attrs := make([]AttributeInfo, 0, count)
	for i := uint16(0); i < count; i++ {
		attr := r.readAttribute()
		if r.err != nil {
			return nil
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// readAttribute reads one attribute header and its payload, then decodes the
// payload on its own cursor so that the bytes the decoder consumes can be
// checked against the declared length.
func (r *attributeReader) readAttribute() AttributeInfo {
	h := AttributeHeader{NameIndex: r.readU2(), Length: r.readU4()}
	payload := r.readBytes(h.Length)
	h.Name = r.utf8(h.NameIndex)
	if r.err != nil {
		return nil
	}

	decode := decoderFor(h.Name)
	if decode == nil {
		return &CustomAttribute{AttributeHeader: h, Info: payload}
	}

	sub := &attributeReader{
		reader:    newBytesReader(payload),
		cp:        r.cp,
		classfile: r.classfile,
		method:    r.method,
	}
	attr := decode(sub, h)
	switch {
	case sub.err == ErrTruncated:
		r.fail(fmt.Errorf("%s attribute: declared %d bytes, decoder needs more: %w", h.Name, h.Length, ErrLengthMismatch))
	case sub.err != nil:
		r.fail(fmt.Errorf("%s attribute: %w", h.Name, sub.err))
	case sub.consumed != int64(h.Length):
		r.fail(fmt.Errorf("%s attribute: declared %d bytes, consumed %d: %w", h.Name, h.Length, sub.consumed, ErrLengthMismatch))
	}
	if r.err != nil {
		return nil
	}
	return attr
}

func (r *attributeReader) utf8(index uint16) string {
	if r.err != nil {
		return ""
	}
	s, err := r.cp.ResolveUtf8(index)
	r.fail(err)
	return s
}

func (r *attributeReader) optionalUtf8(index uint16) string {
	if index == 0 {
		return ""
	}
	return r.utf8(index)
}

func (r *attributeReader) class(index uint16) *ConstantClassInfo {
	if r.err != nil {
		return nil
	}
	c, err := r.cp.ResolveClass(index)
	r.fail(err)
	return c
}

func (r *attributeReader) optionalClass(index uint16) *ConstantClassInfo {
	if index == 0 {
		return nil
	}
	return r.class(index)
}

func (r *attributeReader) classes(indexes []uint16) []*ConstantClassInfo {
	classes := make([]*ConstantClassInfo, len(indexes))
	for i, index := range indexes {
		classes[i] = r.class(index)
	}
	return classes
}

func (r *attributeReader) module(index uint16) *ConstantModuleInfo {
	if r.err != nil {
		return nil
	}
	m, err := r.cp.ResolveModule(index)
	r.fail(err)
	return m
}

func (r *attributeReader) pkg(index uint16) *ConstantPackageInfo {
	if r.err != nil {
		return nil
	}
	p, err := r.cp.ResolvePackage(index)
	r.fail(err)
	return p
}

func (r *attributeReader) entry(index uint16) ConstantPoolEntry {
	if r.err != nil {
		return nil
	}
	e, err := r.cp.Get(index)
	r.fail(err)
	return e
}

func (r *attributeReader) readIndexes() []uint16 {
	count := r.readU2()
	if r.err != nil {
		return nil
	}
	indexes := make([]uint16, count)
	for i := range indexes {
		indexes[i] = r.readU2()
	}
	return indexes
}

func decodeConstantValue(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &ConstantValueAttribute{AttributeHeader: h, ValueIndex: r.readU2()}
	if r.err == nil {
		var err error
		a.Value, err = r.cp.ResolveConstant(a.ValueIndex)
		r.fail(err)
	}
	return a
}

func decodeCode(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &CodeAttribute{
		AttributeHeader: h,
		MaxStack:        r.readU2(),
		MaxLocals:       r.readU2(),
		method:          r.method,
	}
	a.Code = r.readBytes(r.readU4())
	if r.err != nil {
		return a
	}

	instructions, err := decodeInstructions(a.Code, r.cp)
	if err != nil {
		r.fail(err)
		return a
	}
	a.Instructions = instructions

	count := r.readU2()
	if r.err != nil {
		return a
	}
	a.ExceptionHandlers = make([]*ExceptionHandler, count)
	for i := range a.ExceptionHandlers {
		handler := &ExceptionHandler{
			StartPC:        r.readU2(),
			EndPC:          r.readU2(),
			HandlerPC:      r.readU2(),
			CatchTypeIndex: r.readU2(),
		}
		handler.CatchType = r.optionalClass(handler.CatchTypeIndex)
		a.ExceptionHandlers[i] = handler
	}

	a.Attributes = r.readAttributes()
	return a
}

func decodeExceptions(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &ExceptionsAttribute{AttributeHeader: h, ExceptionIndexes: r.readIndexes()}
	a.Exceptions = r.classes(a.ExceptionIndexes)
	return a
}

func decodeInnerClasses(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &InnerClassesAttribute{AttributeHeader: h, Classes: make([]*InnerClass, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		c := &InnerClass{
			InnerClassInfoIndex: r.readU2(),
			OuterClassInfoIndex: r.readU2(),
			InnerNameIndex:      r.readU2(),
			AccessFlags:         AccessFlags(r.readU2()),
			classfile:           r.classfile,
		}
		c.InnerClassInfo = r.class(c.InnerClassInfoIndex)
		c.OuterClassInfo = r.optionalClass(c.OuterClassInfoIndex)
		c.InnerName = r.optionalUtf8(c.InnerNameIndex)
		a.Classes = append(a.Classes, c)
	}
	return a
}

func decodeEnclosingMethod(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &EnclosingMethodAttribute{AttributeHeader: h, ClassIndex: r.readU2(), MethodIndex: r.readU2()}
	a.Class = r.class(a.ClassIndex)
	if a.MethodIndex != 0 && r.err == nil {
		var err error
		a.Method, err = r.cp.ResolveNameAndType(a.MethodIndex)
		r.fail(err)
	}
	return a
}

func decodeSignature(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &SignatureAttribute{AttributeHeader: h, SignatureIndex: r.readU2()}
	a.Signature = r.utf8(a.SignatureIndex)
	return a
}

func decodeSourceFile(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &SourceFileAttribute{AttributeHeader: h, SourceFileIndex: r.readU2()}
	a.SourceFile = r.utf8(a.SourceFileIndex)
	return a
}

func decodeSourceDebugExtension(r *attributeReader, h AttributeHeader) AttributeInfo {
	return &SourceDebugExtensionAttribute{
		AttributeHeader: h,
		DebugExtension:  decodeModifiedUtf8(r.readBytes(h.Length)),
	}
}

func decodeLineNumberTable(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &LineNumberTableAttribute{AttributeHeader: h, LineNumbers: make([]*LineNumber, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		a.LineNumbers = append(a.LineNumbers, &LineNumber{StartPC: r.readU2(), LineNumber: r.readU2()})
	}
	return a
}

func decodeLocalVariableTable(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &LocalVariableTableAttribute{AttributeHeader: h, LocalVariables: make([]*LocalVariable, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		v := &LocalVariable{
			StartPC:         r.readU2(),
			Length:          r.readU2(),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Index:           r.readU2(),
			method:          r.method,
		}
		v.Name = r.utf8(v.NameIndex)
		v.Descriptor = r.utf8(v.DescriptorIndex)
		a.LocalVariables = append(a.LocalVariables, v)
	}
	return a
}

func decodeLocalVariableTypeTable(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &LocalVariableTypeTableAttribute{AttributeHeader: h, LocalVariableTypes: make([]*LocalVariableType, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		v := &LocalVariableType{
			StartPC:        r.readU2(),
			Length:         r.readU2(),
			NameIndex:      r.readU2(),
			SignatureIndex: r.readU2(),
			Index:          r.readU2(),
			method:         r.method,
		}
		v.Name = r.utf8(v.NameIndex)
		v.Signature = r.utf8(v.SignatureIndex)
		a.LocalVariableTypes = append(a.LocalVariableTypes, v)
	}
	return a
}

func decodeBootstrapMethods(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &BootstrapMethodsAttribute{AttributeHeader: h, BootstrapMethods: make([]*BootstrapMethod, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		m := &BootstrapMethod{MethodRefIndex: r.readU2()}
		if r.err == nil {
			var err error
			m.MethodRef, err = r.cp.ResolveMethodHandle(m.MethodRefIndex)
			r.fail(err)
		}
		m.ArgumentIndexes = r.readIndexes()
		m.Arguments = make([]ConstantPoolEntry, len(m.ArgumentIndexes))
		for j, index := range m.ArgumentIndexes {
			m.Arguments[j] = r.entry(index)
		}
		a.BootstrapMethods = append(a.BootstrapMethods, m)
	}
	return a
}

func decodeMethodParameters(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU1()
	a := &MethodParametersAttribute{AttributeHeader: h, Parameters: make([]*MethodParameter, 0, count)}
	for i := uint8(0); i < count && r.err == nil; i++ {
		p := &MethodParameter{NameIndex: r.readU2(), AccessFlags: AccessFlags(r.readU2())}
		p.Name = r.optionalUtf8(p.NameIndex)
		a.Parameters = append(a.Parameters, p)
	}
	return a
}

func decodeModule(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &ModuleAttribute{
		AttributeHeader:    h,
		ModuleNameIndex:    r.readU2(),
		ModuleFlags:        AccessFlags(r.readU2()),
		ModuleVersionIndex: r.readU2(),
	}
	a.Module = r.module(a.ModuleNameIndex)
	a.ModuleVersion = r.optionalUtf8(a.ModuleVersionIndex)

	count := r.readU2()
	for i := uint16(0); i < count && r.err == nil; i++ {
		req := &ModuleRequires{
			RequiresIndex:        r.readU2(),
			RequiresFlags:        AccessFlags(r.readU2()),
			RequiresVersionIndex: r.readU2(),
		}
		req.Requires = r.module(req.RequiresIndex)
		req.RequiresVersion = r.optionalUtf8(req.RequiresVersionIndex)
		a.Requires = append(a.Requires, req)
	}

	count = r.readU2()
	for i := uint16(0); i < count && r.err == nil; i++ {
		exp := &ModuleExports{ExportsIndex: r.readU2(), ExportsFlags: AccessFlags(r.readU2())}
		exp.ExportsToIndexes = r.readIndexes()
		exp.Exports = r.pkg(exp.ExportsIndex)
		for _, index := range exp.ExportsToIndexes {
			exp.ExportsTo = append(exp.ExportsTo, r.module(index))
		}
		a.Exports = append(a.Exports, exp)
	}

	count = r.readU2()
	for i := uint16(0); i < count && r.err == nil; i++ {
		opens := &ModuleOpens{OpensIndex: r.readU2(), OpensFlags: AccessFlags(r.readU2())}
		opens.OpensToIndexes = r.readIndexes()
		opens.Opens = r.pkg(opens.OpensIndex)
		for _, index := range opens.OpensToIndexes {
			opens.OpensTo = append(opens.OpensTo, r.module(index))
		}
		a.Opens = append(a.Opens, opens)
	}

	for _, index := range r.readIndexes() {
		a.Uses = append(a.Uses, &ModuleUses{UsesIndex: index, Uses: r.class(index)})
	}

	count = r.readU2()
	for i := uint16(0); i < count && r.err == nil; i++ {
		p := &ModuleProvides{ProvidesIndex: r.readU2()}
		p.ProvidesWithIndexes = r.readIndexes()
		p.Provides = r.class(p.ProvidesIndex)
		p.ProvidesWith = r.classes(p.ProvidesWithIndexes)
		a.Provides = append(a.Provides, p)
	}
	return a
}

func decodeModulePackages(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &ModulePackagesAttribute{AttributeHeader: h, PackageIndexes: r.readIndexes()}
	for _, index := range a.PackageIndexes {
		a.Packages = append(a.Packages, r.pkg(index))
	}
	return a
}

func decodeModuleMainClass(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &ModuleMainClassAttribute{AttributeHeader: h, MainClassIndex: r.readU2()}
	a.MainClass = r.class(a.MainClassIndex)
	return a
}

func decodeNestHost(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &NestHostAttribute{AttributeHeader: h, HostClassIndex: r.readU2()}
	a.HostClass = r.class(a.HostClassIndex)
	return a
}

func decodeNestMembers(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &NestMembersAttribute{AttributeHeader: h, ClassIndexes: r.readIndexes()}
	a.Classes = r.classes(a.ClassIndexes)
	return a
}

func decodePermittedSubclasses(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &PermittedSubclassesAttribute{AttributeHeader: h, ClassIndexes: r.readIndexes()}
	a.Classes = r.classes(a.ClassIndexes)
	return a
}

func decodeRecord(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &RecordAttribute{AttributeHeader: h, Components: make([]*RecordComponent, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		c := &RecordComponent{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}
		c.Name = r.utf8(c.NameIndex)
		c.Descriptor = r.utf8(c.DescriptorIndex)
		c.Attributes = r.readAttributes()
		a.Components = append(a.Components, c)
	}
	return a
}

func decodeStackMapTable(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &StackMapTableAttribute{AttributeHeader: h, Frames: make([]*StackMapFrame, 0, count)}
	for i := uint16(0); i < count && r.err == nil; i++ {
		f := &StackMapFrame{FrameType: r.readU1()}
		switch t := f.FrameType; {
		case t <= 63:
			f.Kind = SameFrame
			f.OffsetDelta = uint16(t)
		case t <= 127:
			f.Kind = SameLocals1StackItemFrame
			f.OffsetDelta = uint16(t - 64)
			f.Stack = []*VerificationType{r.readVerificationType()}
		case t < 247:
			r.fail(fmt.Errorf("reserved stack map frame type %d", t))
		case t == 247:
			f.Kind = SameLocals1StackItemFrameExtended
			f.OffsetDelta = r.readU2()
			f.Stack = []*VerificationType{r.readVerificationType()}
		case t <= 250:
			f.Kind = ChopFrame
			f.OffsetDelta = r.readU2()
		case t == 251:
			f.Kind = SameFrameExtended
			f.OffsetDelta = r.readU2()
		case t <= 254:
			f.Kind = AppendFrame
			f.OffsetDelta = r.readU2()
			f.Locals = r.readVerificationTypes(int(t) - 251)
		default:
			f.Kind = FullFrame
			f.OffsetDelta = r.readU2()
			f.Locals = r.readVerificationTypes(int(r.readU2()))
			f.Stack = r.readVerificationTypes(int(r.readU2()))
		}
		a.Frames = append(a.Frames, f)
	}
	return a
}

func (r *attributeReader) readVerificationTypes(n int) []*VerificationType {
	types := make([]*VerificationType, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		types = append(types, r.readVerificationType())
	}
	return types
}

func (r *attributeReader) readVerificationType() *VerificationType {
	v := &VerificationType{Tag: r.readU1()}
	switch v.Tag {
	case ItemObject:
		v.ClassIndex = r.readU2()
		v.Class = r.class(v.ClassIndex)
	case ItemUninitialized:
		v.Offset = r.readU2()
	default:
		if v.Tag > ItemUninitialized {
			r.fail(fmt.Errorf("unknown verification type tag %d", v.Tag))
		}
	}
	return v
}

func visibleAnnotations(name string) bool {
	return strings.HasPrefix(name, "RuntimeVisible")
}

func decodeAnnotations(r *attributeReader, h AttributeHeader) AttributeInfo {
	a := &AnnotationsAttribute{AttributeHeader: h, Visible: visibleAnnotations(h.Name)}
	a.Annotations = r.readAnnotations()
	return a
}

func decodeParameterAnnotations(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU1()
	a := &ParameterAnnotationsAttribute{
		AttributeHeader: h,
		Visible:         visibleAnnotations(h.Name),
		Parameters:      make([]*ParameterAnnotation, 0, count),
	}
	for i := uint8(0); i < count && r.err == nil; i++ {
		a.Parameters = append(a.Parameters, &ParameterAnnotation{Annotations: r.readAnnotations()})
	}
	return a
}

func decodeTypeAnnotations(r *attributeReader, h AttributeHeader) AttributeInfo {
	count := r.readU2()
	a := &TypeAnnotationsAttribute{
		AttributeHeader: h,
		Visible:         visibleAnnotations(h.Name),
		Annotations:     make([]*TypeAnnotation, 0, count),
	}
	for i := uint16(0); i < count && r.err == nil; i++ {
		a.Annotations = append(a.Annotations, r.readTypeAnnotation())
	}
	return a
}

func decodeAnnotationDefault(r *attributeReader, h AttributeHeader) AttributeInfo {
	return &AnnotationDefaultAttribute{AttributeHeader: h, DefaultValue: r.readElementValue()}
}

func (r *attributeReader) readAnnotations() []*Annotation {
	count := r.readU2()
	annotations := make([]*Annotation, 0, count)
	for i := uint16(0); i < count && r.err == nil; i++ {
		annotations = append(annotations, r.readAnnotation())
	}
	return annotations
}

func (r *attributeReader) readAnnotation() *Annotation {
	a := &Annotation{}
	r.readAnnotationBody(a)
	return a
}

func (r *attributeReader) readAnnotationBody(a *Annotation) {
	a.TypeIndex = r.readU2()
	a.Type = r.utf8(a.TypeIndex)
	count := r.readU2()
	a.ElementValuePairs = make([]*ElementValuePair, 0, count)
	for i := uint16(0); i < count && r.err == nil; i++ {
		pair := &ElementValuePair{ElementNameIndex: r.readU2()}
		pair.ElementName = r.utf8(pair.ElementNameIndex)
		pair.Value = r.readElementValue()
		a.ElementValuePairs = append(a.ElementValuePairs, pair)
	}
}

func (r *attributeReader) readElementValue() *ElementValue {
	v := &ElementValue{Tag: r.readU1()}
	if r.err != nil {
		return v
	}
	switch v.Tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		v.ConstValueIndex = r.readU2()
		v.Const = r.entry(v.ConstValueIndex)
	case 'e':
		v.EnumTypeNameIndex = r.readU2()
		v.EnumConstNameIndex = r.readU2()
		v.EnumTypeName = r.utf8(v.EnumTypeNameIndex)
		v.EnumConstName = r.utf8(v.EnumConstNameIndex)
	case 'c':
		v.ClassInfoIndex = r.readU2()
		v.ClassInfo = r.utf8(v.ClassInfoIndex)
	case '@':
		v.Annotation = r.readAnnotation()
	case '[':
		count := r.readU2()
		v.Values = make([]*ElementValue, 0, count)
		for i := uint16(0); i < count && r.err == nil; i++ {
			v.Values = append(v.Values, r.readElementValue())
		}
	default:
		r.fail(fmt.Errorf("unknown element value tag %q", v.Tag))
	}
	return v
}

func (r *attributeReader) readTypeAnnotation() *TypeAnnotation {
	a := &TypeAnnotation{TargetType: r.readU1()}
	t := &a.Target
	switch tt := a.TargetType; tt {
	case 0x00, 0x01:
		t.TypeParameterIndex = r.readU1()
	case 0x10:
		t.SupertypeIndex = r.readU2()
	case 0x11, 0x12:
		t.TypeParameterIndex = r.readU1()
		t.BoundIndex = r.readU1()
	case 0x13, 0x14, 0x15:
	case 0x16:
		t.FormalParameterIndex = r.readU1()
	case 0x17:
		t.ThrowsTypeIndex = r.readU2()
	case 0x40, 0x41:
		count := r.readU2()
		for i := uint16(0); i < count && r.err == nil; i++ {
			t.LocalVariables = append(t.LocalVariables, LocalVariableTarget{
				StartPC: r.readU2(),
				Length:  r.readU2(),
				Index:   r.readU2(),
			})
		}
	case 0x42:
		t.ExceptionTableIndex = r.readU2()
	case 0x43, 0x44, 0x45, 0x46:
		t.Offset = r.readU2()
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		t.Offset = r.readU2()
		t.TypeArgumentIndex = r.readU1()
	default:
		r.fail(fmt.Errorf("unknown type annotation target 0x%02x", tt))
		return a
	}

	pathLength := r.readU1()
	a.TargetPath = make([]TypePathEntry, 0, pathLength)
	for i := uint8(0); i < pathLength && r.err == nil; i++ {
		a.TargetPath = append(a.TargetPath, TypePathEntry{
			TypePathKind:      r.readU1(),
			TypeArgumentIndex: r.readU1(),
		})
	}
	r.readAnnotationBody(&a.Annotation)
	return a
}
