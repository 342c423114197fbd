// Package classfiletest assembles class files byte by byte for tests.
package classfiletest

import (
	"encoding/binary"
	"math"
)

const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// Builder accumulates a constant pool and class members. Pool helpers return
// the index of the entry they add; Utf8 and Class entries are shared.
type Builder struct {
	Major, Minor uint16

	pool       [][]byte
	next       uint16
	utf8s      map[string]uint16
	classes    map[string]uint16
	access     uint16
	this       uint16
	super      uint16
	interfaces []uint16
	fields     [][]byte
	methods    [][]byte
	attributes [][]byte
}

// New starts a public class named by its internal form, extending
// java/lang/Object.
func New(className string) *Builder {
	b := &Builder{
		Major:   61,
		next:    1,
		utf8s:   map[string]uint16{},
		classes: map[string]uint16{},
		access:  0x0021,
	}
	b.this = b.Class(className)
	b.super = b.Class("java/lang/Object")
	return b
}

func U1(v uint8) []byte { return []byte{v} }

func U2(v uint16) []byte { return binary.BigEndian.AppendUint16(nil, v) }

func U4(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// NextIndex is the index the next pool entry will get.
func (b *Builder) NextIndex() uint16 { return b.next }

// This is the pool index of this_class.
func (b *Builder) This() uint16 { return b.this }

// Raw appends an arbitrary entry, which lets tests write dangling or
// mistyped references.
func (b *Builder) Raw(tag uint8, payload ...[]byte) uint16 {
	index := b.next
	b.pool = append(b.pool, Concat(append([][]byte{U1(tag)}, payload...)...))
	b.next++
	if tag == tagLong || tag == tagDouble {
		b.next++
	}
	return index
}

func (b *Builder) Utf8(s string) uint16 {
	if index, ok := b.utf8s[s]; ok {
		return index
	}
	index := b.Raw(tagUtf8, U2(uint16(len(s))), []byte(s))
	b.utf8s[s] = index
	return index
}

// PadTo adds filler entries until the next index is index.
func (b *Builder) PadTo(index uint16) {
	for i := 0; b.next < index; i++ {
		b.Raw(tagUtf8, U2(3), []byte{'p', byte('a' + i%26), byte('a' + i/26%26)})
	}
}

func (b *Builder) Class(name string) uint16 {
	if index, ok := b.classes[name]; ok {
		return index
	}
	index := b.Raw(tagClass, U2(b.Utf8(name)))
	b.classes[name] = index
	return index
}

func (b *Builder) StringConstant(s string) uint16 {
	return b.Raw(tagString, U2(b.Utf8(s)))
}

func (b *Builder) Integer(v int32) uint16 {
	return b.Raw(tagInteger, U4(uint32(v)))
}

func (b *Builder) Float(v float32) uint16 {
	return b.Raw(tagFloat, U4(math.Float32bits(v)))
}

// Long adds a Long entry, which occupies two pool slots.
func (b *Builder) Long(v int64) uint16 {
	return b.Raw(tagLong, U4(uint32(uint64(v)>>32)), U4(uint32(v)))
}

func (b *Builder) Double(v float64) uint16 {
	bits := math.Float64bits(v)
	return b.Raw(tagDouble, U4(uint32(bits>>32)), U4(uint32(bits)))
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	return b.Raw(tagNameAndType, U2(b.Utf8(name)), U2(b.Utf8(descriptor)))
}

func (b *Builder) Fieldref(class, name, descriptor string) uint16 {
	return b.Raw(tagFieldref, U2(b.Class(class)), U2(b.NameAndType(name, descriptor)))
}

func (b *Builder) Methodref(class, name, descriptor string) uint16 {
	return b.Raw(tagMethodref, U2(b.Class(class)), U2(b.NameAndType(name, descriptor)))
}

func (b *Builder) InterfaceMethodref(class, name, descriptor string) uint16 {
	return b.Raw(tagInterfaceMethodref, U2(b.Class(class)), U2(b.NameAndType(name, descriptor)))
}

func (b *Builder) MethodHandle(kind uint8, reference uint16) uint16 {
	return b.Raw(tagMethodHandle, U1(kind), U2(reference))
}

func (b *Builder) MethodType(descriptor string) uint16 {
	return b.Raw(tagMethodType, U2(b.Utf8(descriptor)))
}

func (b *Builder) Dynamic(bootstrap uint16, name, descriptor string) uint16 {
	return b.Raw(tagDynamic, U2(bootstrap), U2(b.NameAndType(name, descriptor)))
}

func (b *Builder) InvokeDynamic(bootstrap uint16, name, descriptor string) uint16 {
	return b.Raw(tagInvokeDynamic, U2(bootstrap), U2(b.NameAndType(name, descriptor)))
}

func (b *Builder) Module(name string) uint16 {
	return b.Raw(tagModule, U2(b.Utf8(name)))
}

func (b *Builder) Package(name string) uint16 {
	return b.Raw(tagPackage, U2(b.Utf8(name)))
}

func (b *Builder) SetAccess(flags uint16) *Builder {
	b.access = flags
	return b
}

func (b *Builder) SetSuper(name string) *Builder {
	b.super = b.Class(name)
	return b
}

// NoSuper writes a super_class of 0, as for java/lang/Object.
func (b *Builder) NoSuper() *Builder {
	b.super = 0
	return b
}

func (b *Builder) AddInterface(name string) *Builder {
	b.interfaces = append(b.interfaces, b.Class(name))
	return b
}

// Attribute encodes a complete attribute with a length matching payload.
func (b *Builder) Attribute(name string, payload ...[]byte) []byte {
	body := Concat(payload...)
	return b.AttributeWithLength(name, uint32(len(body)), body)
}

// AttributeWithLength encodes an attribute whose declared length may
// disagree with its payload.
func (b *Builder) AttributeWithLength(name string, length uint32, payload []byte) []byte {
	return Concat(U2(b.Utf8(name)), U4(length), payload)
}

// Handler encodes one exception table entry; catchType 0 catches
// everything.
func Handler(start, end, handler, catchType uint16) []byte {
	return Concat(U2(start), U2(end), U2(handler), U2(catchType))
}

// Code encodes a Code attribute.
func (b *Builder) Code(maxStack, maxLocals uint16, code []byte, handlers [][]byte, attrs ...[]byte) []byte {
	return b.Attribute("Code",
		U2(maxStack), U2(maxLocals),
		U4(uint32(len(code))), code,
		U2(uint16(len(handlers))), Concat(handlers...),
		U2(uint16(len(attrs))), Concat(attrs...),
	)
}

func (b *Builder) member(access uint16, name, descriptor string, attrs [][]byte) []byte {
	return Concat(
		U2(access), U2(b.Utf8(name)), U2(b.Utf8(descriptor)),
		U2(uint16(len(attrs))), Concat(attrs...),
	)
}

func (b *Builder) AddField(access uint16, name, descriptor string, attrs ...[]byte) *Builder {
	b.fields = append(b.fields, b.member(access, name, descriptor, attrs))
	return b
}

func (b *Builder) AddMethod(access uint16, name, descriptor string, attrs ...[]byte) *Builder {
	b.methods = append(b.methods, b.member(access, name, descriptor, attrs))
	return b
}

func (b *Builder) AddAttribute(attr []byte) *Builder {
	b.attributes = append(b.attributes, attr)
	return b
}

// Bytes serializes the class file as built so far.
func (b *Builder) Bytes() []byte {
	return Concat(
		U4(0xCAFEBABE), U2(b.Minor), U2(b.Major),
		U2(b.next), Concat(b.pool...),
		U2(b.access), U2(b.this), U2(b.super),
		U2(uint16(len(b.interfaces))), indexes(b.interfaces),
		U2(uint16(len(b.fields))), Concat(b.fields...),
		U2(uint16(len(b.methods))), Concat(b.methods...),
		U2(uint16(len(b.attributes))), Concat(b.attributes...),
	)
}

func indexes(values []uint16) []byte {
	var out []byte
	for _, v := range values {
		out = append(out, U2(v)...)
	}
	return out
}
