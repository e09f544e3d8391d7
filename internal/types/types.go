/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types holds JVM constants and descriptor-parsing helpers shared
// across the decoder, runtime, and registry packages, the way jacobin/types
// is shared by jacobin's classloader, jvm, and object packages.
package types

// ConstantKind is the tag byte of a constant-pool entry (spec.md §6).
type ConstantKind byte

const (
	Utf8               ConstantKind = 1
	IntegerConst       ConstantKind = 3
	FloatConst         ConstantKind = 4
	LongConst          ConstantKind = 5
	DoubleConst        ConstantKind = 6
	ClassRef           ConstantKind = 7
	StringConst        ConstantKind = 8
	FieldRef           ConstantKind = 9
	MethodRef          ConstantKind = 10
	InterfaceMethodRef ConstantKind = 11
	NameAndType        ConstantKind = 12
	MethodHandle       ConstantKind = 15
	MethodType         ConstantKind = 16
	Dynamic            ConstantKind = 17
	InvokeDynamic      ConstantKind = 18
	Module             ConstantKind = 19
	Package            ConstantKind = 20
	Unusable           ConstantKind = 0 // sentinel, never present on disk
)

func (k ConstantKind) String() string {
	switch k {
	case Utf8:
		return "Utf8"
	case IntegerConst:
		return "Integer"
	case FloatConst:
		return "Float"
	case LongConst:
		return "Long"
	case DoubleConst:
		return "Double"
	case ClassRef:
		return "Class"
	case StringConst:
		return "String"
	case FieldRef:
		return "Fieldref"
	case MethodRef:
		return "Methodref"
	case InterfaceMethodRef:
		return "InterfaceMethodref"
	case NameAndType:
		return "NameAndType"
	case MethodHandle:
		return "MethodHandle"
	case MethodType:
		return "MethodType"
	case Dynamic:
		return "Dynamic"
	case InvokeDynamic:
		return "InvokeDynamic"
	case Module:
		return "Module"
	case Package:
		return "Package"
	case Unusable:
		return "Unusable"
	default:
		return "UnknownConstantKind"
	}
}

// ReferenceKind is the one-byte "kind" field of a MethodHandle CP entry
// (spec.md §6).
type ReferenceKind byte

const (
	RefGetField         ReferenceKind = 1
	RefGetStatic        ReferenceKind = 2
	RefPutField         ReferenceKind = 3
	RefPutStatic        ReferenceKind = 4
	RefInvokeVirtual    ReferenceKind = 5
	RefInvokeStatic     ReferenceKind = 6
	RefInvokeSpecial    ReferenceKind = 7
	RefNewInvokeSpecial ReferenceKind = 8
	RefInvokeInterface  ReferenceKind = 9
)

// ValidReferenceKind reports whether k is one of the nine legal reference
// kinds.
func ValidReferenceKind(k ReferenceKind) bool {
	return k >= RefGetField && k <= RefInvokeInterface
}

// MaxSupportedMajor is the highest class-file major version this core
// accepts (Java SE 17, spec.md §1/§4.6).
const MaxSupportedMajor = 61

// ClassMagic is the required first four bytes of every class file.
const ClassMagic uint32 = 0xCAFEBABE

// ObjectClassName is the canonical name of java/lang/Object, the only class
// legally permitted a super-class index of zero.
const ObjectClassName = "java/lang/Object"

// Category2 reports whether a descriptor's first character denotes a
// category-2 (two-slot) JVM type: long (J) or double (D).
func Category2(descriptorFirstByte byte) bool {
	return descriptorFirstByte == 'J' || descriptorFirstByte == 'D'
}
