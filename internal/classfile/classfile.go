/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classfile decodes the Java class file binary format into an
// in-memory structural model: the constant pool, fields, methods, and every
// attribute variant, plus the supporting annotation, stack-map, type
// annotation, and module grammars.
package classfile

import "github.com/jacobin-corevm/corevm/internal/types"

// FieldInfo is one entry of ClassFile.Fields.
type FieldInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// MethodInfo is one entry of ClassFile.Methods.
type MethodInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// ClassFile is the root record of the decoded class (spec.md §3, "ClassFile").
// Its Code-attribute bytes (and other raw attribute bodies) are borrowed
// from Bytes; Utf8 constants are decoded into their own Go strings. See
// Decode's doc comment on ownership.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool *ConstantPool
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []Attribute

	// Bytes holds (or keeps alive) the source byte range that CodeAttr,
	// SourceDebugExtensionAttr and CustomAttr byte slices borrow into.
	// Decode does not copy those bodies, so this field must outlive the
	// ClassFile's use by a caller.
	Bytes []byte
}

// Name resolves this class's own canonical name via the CP entry at
// ThisClass. Decode does not check ThisClass, so Name returns a BadCpIndex
// or CpKindMismatch error when it does not refer to a Class entry.
func (cf *ClassFile) Name() (string, error) {
	return cf.ConstantPool.ClassName(int(cf.ThisClass))
}

// SuperName resolves the superclass's canonical name, or "" for
// java/lang/Object, whose super_class index is legitimately 0.
func (cf *ClassFile) SuperName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return cf.ConstantPool.ClassName(int(cf.SuperClass))
}

// Decode runs the single forward pass of spec.md §4.6 over buf: magic,
// version, constant pool, access flags and this/super, interfaces, fields,
// methods, then class-level attributes. Any step's failure aborts the whole
// load; there is no partial ClassFile result on error.
//
// The returned ClassFile's Code, SourceDebugExtension and custom-attribute
// byte slices are borrows into buf (see the "Borrowed vs owned bytes"
// design note); Utf8 constants are copied into Go strings. The caller must
// keep buf alive and unmodified for as long as it uses the borrowed slices.
// Callers reading from a memory-mapped file achieve this by keeping the
// mapping open; LoadFile does this by holding the mapping in the returned
// MappedClass until Close.
func Decode(buf []byte) (*ClassFile, error) {
	return decode(buf, false)
}

// DecodeStrict is Decode plus step 4 of spec.md §4.6: a structural
// validation pass over the constant pool verifying every cross-reference's
// kind is legal in its context, before the rest of the class is read.
func DecodeStrict(buf []byte) (*ClassFile, error) {
	return decode(buf, true)
}

func decode(buf []byte, strict bool) (*ClassFile, error) {
	r := newReader(buf)

	magic, err := r.readU32()
	if err != nil {
		return nil, err
	}
	if magic != types.ClassMagic {
		return nil, errBadMagic()
	}

	minor, err := r.readU16()
	if err != nil {
		return nil, err
	}
	major, err := r.readU16()
	if err != nil {
		return nil, err
	}
	if int(major) > types.MaxSupportedMajor {
		return nil, errUnsupportedMajor(int(major))
	}

	cp, err := decodeConstantPool(r)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := validateConstantPool(cp); err != nil {
			return nil, err
		}
	}

	accessFlags, err := r.readU16()
	if err != nil {
		return nil, err
	}
	thisClass, err := r.readU16()
	if err != nil {
		return nil, err
	}
	superClass, err := r.readU16()
	if err != nil {
		return nil, err
	}

	interfaces, err := decodeInterfaces(r, cp)
	if err != nil {
		return nil, err
	}

	fields, err := decodeFields(r, cp)
	if err != nil {
		return nil, err
	}

	methods, err := decodeMethods(r, cp)
	if err != nil {
		return nil, err
	}

	attrs, err := decodeAttributes(r, cp)
	if err != nil {
		return nil, err
	}

	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: cp,
		AccessFlags:  accessFlags,
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
		Bytes:        buf,
	}, nil
}

// decodeInterfaces reads the interface table, rejecting any index that does
// not resolve to a Class entry (spec.md §4.6 step 6).
func decodeInterfaces(r *reader, cp *ConstantPool) ([]uint16, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, n)
	for i := 0; i < int(n); i++ {
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		e, err := cp.Entry(int(idx))
		if err != nil {
			return nil, err
		}
		if e.Kind() != types.ClassRef {
			return nil, errCpKindMismatch("Class", e.Kind().String(), int(idx))
		}
		out = append(out, idx)
	}
	return out, nil
}

func decodeFields(r *reader, cp *ConstantPool) ([]FieldInfo, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	out := make([]FieldInfo, 0, n)
	for i := 0; i < int(n); i++ {
		flags, err := r.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		attrs, err := decodeAttributes(r, cp)
		if err != nil {
			return nil, err
		}
		out = append(out, FieldInfo{
			AccessFlags: flags, NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs,
		})
	}
	return out, nil
}

func decodeMethods(r *reader, cp *ConstantPool) ([]MethodInfo, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	out := make([]MethodInfo, 0, n)
	for i := 0; i < int(n); i++ {
		flags, err := r.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		attrs, err := decodeAttributes(r, cp)
		if err != nil {
			return nil, err
		}
		out = append(out, MethodInfo{
			AccessFlags: flags, NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs,
		})
	}
	return out, nil
}
