package classfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ParseFile reads and parses the class file at path.
func ParseFile(path string) (*Classfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func ParseBytes(data []byte) (*Classfile, error) {
	return Parse(bytes.NewReader(data))
}

// Parse decodes one class file from rd. Any structural problem, including
// an unresolvable constant pool reference, fails the whole parse with a
// *MalformedClassError; no partially built Classfile is returned.
func Parse(rd io.Reader) (*Classfile, error) {
	r := newReader(rd)

	magic := r.readU4()
	if r.err != nil {
		return nil, r.malformed("magic", r.err)
	}
	if magic != Magic {
		return nil, r.malformed(fmt.Sprintf("magic 0x%08X", magic), ErrBadMagic)
	}

	cf := &Classfile{
		minorVersion: r.readU2(),
		majorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, r.malformed("version", r.err)
	}

	cp, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.constantPool = cp

	cf.accessFlags = AccessFlags(r.readU2())
	cf.thisClass = r.readU2()
	cf.superClass = r.readU2()
	if r.err != nil {
		return nil, r.malformed("class info", r.err)
	}
	if cf.class, err = cp.ResolveClass(cf.thisClass); err != nil {
		return nil, r.malformed("this_class", err)
	}
	if cf.superClass != 0 {
		if cf.super, err = cp.ResolveClass(cf.superClass); err != nil {
			return nil, r.malformed("super_class", err)
		}
	}

	count := r.readU2()
	if r.err != nil {
		return nil, r.malformed("interfaces count", r.err)
	}
	cf.interfaces = make([]*ConstantClassInfo, count)
	for i := range cf.interfaces {
		index := r.readU2()
		if r.err != nil {
			return nil, r.malformed("interfaces", r.err)
		}
		if cf.interfaces[i], err = cp.ResolveClass(index); err != nil {
			return nil, r.malformed(fmt.Sprintf("interface %d", i), err)
		}
	}

	ar := &attributeReader{reader: r, cp: cp, classfile: cf}

	count = r.readU2()
	if r.err != nil {
		return nil, r.malformed("fields count", r.err)
	}
	cf.fields = make([]*FieldInfo, count)
	for i := range cf.fields {
		f := &FieldInfo{}
		if err := ar.readFeature(&f.featureInfo); err != nil {
			return nil, r.malformed(fmt.Sprintf("field %d", i), err)
		}
		cf.fields[i] = f
	}

	count = r.readU2()
	if r.err != nil {
		return nil, r.malformed("methods count", r.err)
	}
	cf.methods = make([]*MethodInfo, count)
	for i := range cf.methods {
		m := &MethodInfo{}
		mr := &attributeReader{reader: r, cp: cp, classfile: cf, method: m}
		if err := mr.readFeature(&m.featureInfo); err != nil {
			return nil, r.malformed(fmt.Sprintf("method %d", i), err)
		}
		cf.methods[i] = m
	}

	cf.attributes = ar.readAttributes()
	if r.err != nil {
		return nil, r.malformed("class attributes", r.err)
	}

	return cf, nil
}

func (r *attributeReader) readFeature(f *featureInfo) error {
	f.classfile = r.classfile
	f.accessFlags = AccessFlags(r.readU2())
	f.nameIndex = r.readU2()
	f.descriptorIndex = r.readU2()
	f.name = r.utf8(f.nameIndex)
	f.descriptor = r.utf8(f.descriptorIndex)
	if r.err != nil {
		return r.err
	}
	f.attributes = r.readAttributes()
	if r.err != nil {
		return fmt.Errorf("%s: %w", f.name, r.err)
	}
	return nil
}
