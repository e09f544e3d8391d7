/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"math"

	"github.com/jacobin-corevm/corevm/internal/types"
)

// ConstantEntry is the tagged sum over constant-pool entry kinds (spec.md
// §3). Unlike the teacher's struct-of-parallel-slices representation
// (classloader.ParsedClass's cpIndex/classRefs/doubles/... fields, each a
// same-length-as-needed slice addressed by a secondary "slot" index), this
// is a single interface with one concrete type per variant, so a missing
// case in a type switch is a compile-time-visible gap rather than a wrong
// slot lookup. Each concrete type's Kind() identifies it in O(1) without a
// reflective type switch on the hot decode path.
type ConstantEntry interface {
	Kind() types.ConstantKind
}

type Utf8Entry struct{ Value string }

func (Utf8Entry) Kind() types.ConstantKind { return types.Utf8 }

type IntegerEntry struct{ Value int32 }

func (IntegerEntry) Kind() types.ConstantKind { return types.IntegerConst }

type FloatEntry struct{ Value float32 }

func (FloatEntry) Kind() types.ConstantKind { return types.FloatConst }

type LongEntry struct{ Value int64 }

func (LongEntry) Kind() types.ConstantKind { return types.LongConst }

type DoubleEntry struct{ Value float64 }

func (DoubleEntry) Kind() types.ConstantKind { return types.DoubleConst }

type ClassEntry struct{ NameIndex uint16 }

func (ClassEntry) Kind() types.ConstantKind { return types.ClassRef }

type StringEntry struct{ Utf8Index uint16 }

func (StringEntry) Kind() types.ConstantKind { return types.StringConst }

type FieldRefEntry struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (FieldRefEntry) Kind() types.ConstantKind { return types.FieldRef }

type MethodRefEntry struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (MethodRefEntry) Kind() types.ConstantKind { return types.MethodRef }

type InterfaceMethodRefEntry struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (InterfaceMethodRefEntry) Kind() types.ConstantKind { return types.InterfaceMethodRef }

type NameAndTypeEntry struct {
	NameIndex uint16
	DescIndex uint16
}

func (NameAndTypeEntry) Kind() types.ConstantKind { return types.NameAndType }

type MethodHandleEntry struct {
	RefKind  types.ReferenceKind
	RefIndex uint16
}

func (MethodHandleEntry) Kind() types.ConstantKind { return types.MethodHandle }

type MethodTypeEntry struct{ DescIndex uint16 }

func (MethodTypeEntry) Kind() types.ConstantKind { return types.MethodType }

type DynamicEntry struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (DynamicEntry) Kind() types.ConstantKind { return types.Dynamic }

type InvokeDynamicEntry struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (InvokeDynamicEntry) Kind() types.ConstantKind { return types.InvokeDynamic }

type ModuleEntry struct{ NameIndex uint16 }

func (ModuleEntry) Kind() types.ConstantKind { return types.Module }

type PackageEntry struct{ NameIndex uint16 }

func (PackageEntry) Kind() types.ConstantKind { return types.Package }

// UnusableEntry is the sentinel occupying the slot immediately after a Long
// or Double entry (spec.md §3/§4.2).
type UnusableEntry struct{}

func (UnusableEntry) Kind() types.ConstantKind { return types.Unusable }

// ConstantPool is the 1-indexed ordered sequence of constant entries
// (spec.md §3). Index 0 is never valid; CpIndex[0] is always nil and must
// never be read.
type ConstantPool struct {
	CpIndex []ConstantEntry
}

// Size returns the highest legal index, i.e. |CP| in spec.md's notation.
func (cp *ConstantPool) Size() int {
	if cp == nil {
		return 0
	}
	return len(cp.CpIndex) - 1
}

// Entry returns the entry at index i, or BadCpIndex if i is 0, negative, or
// past the end (spec.md §4.2).
func (cp *ConstantPool) Entry(i int) (ConstantEntry, error) {
	if cp == nil || i < 1 || i >= len(cp.CpIndex) {
		sz := 0
		if cp != nil {
			sz = cp.Size()
		}
		return nil, errBadCpIndex(i, sz)
	}
	return cp.CpIndex[i], nil
}

func (cp *ConstantPool) Utf8(i int) (string, error) {
	e, err := cp.Entry(i)
	if err != nil {
		return "", err
	}
	u, ok := e.(Utf8Entry)
	if !ok {
		return "", errCpKindMismatch("Utf8", e.Kind().String(), i)
	}
	return u.Value, nil
}

func (cp *ConstantPool) ClassName(i int) (string, error) {
	e, err := cp.Entry(i)
	if err != nil {
		return "", err
	}
	c, ok := e.(ClassEntry)
	if !ok {
		return "", errCpKindMismatch("Class", e.Kind().String(), i)
	}
	return cp.Utf8(int(c.NameIndex))
}

func (cp *ConstantPool) NameAndType(i int) (NameAndTypeEntry, error) {
	e, err := cp.Entry(i)
	if err != nil {
		return NameAndTypeEntry{}, err
	}
	nt, ok := e.(NameAndTypeEntry)
	if !ok {
		return NameAndTypeEntry{}, errCpKindMismatch("NameAndType", e.Kind().String(), i)
	}
	return nt, nil
}

// decodeConstantPool reads the CP header (a count N) and exactly N-1
// entries, applying the long/double double-slot rule of spec.md §4.2: the
// slot immediately following a Long or Double is filled with UnusableEntry
// without consuming any more input, and the loop index advances an extra
// step to account for it.
func decodeConstantPool(r *reader) (*ConstantPool, error) {
	count, err := r.readU16()
	if err != nil {
		return nil, err
	}
	cp := &ConstantPool{CpIndex: make([]ConstantEntry, count)}
	// index 0 is the permanently-invalid slot; leave it nil.
	for i := 1; i < int(count); i++ {
		entry, wide, err := decodeConstantEntry(r)
		if err != nil {
			return nil, err
		}
		cp.CpIndex[i] = entry
		if wide {
			i++
			if i < int(count) {
				cp.CpIndex[i] = UnusableEntry{}
			}
		}
	}
	return cp, nil
}

// decodeConstantEntry reads one constant-pool entry and reports whether it
// occupies two pool slots (Long, Double).
func decodeConstantEntry(r *reader) (entry ConstantEntry, wide bool, err error) {
	tag, err := r.readU8()
	if err != nil {
		return nil, false, err
	}
	switch types.ConstantKind(tag) {
	case types.Utf8:
		n, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		b, err := r.readBytes(int(n))
		if err != nil {
			return nil, false, err
		}
		return Utf8Entry{Value: decodeModifiedUTF8(b)}, false, nil
	case types.IntegerConst:
		v, err := r.readU32()
		if err != nil {
			return nil, false, err
		}
		return IntegerEntry{Value: int32(v)}, false, nil
	case types.FloatConst:
		v, err := r.readU32()
		if err != nil {
			return nil, false, err
		}
		return FloatEntry{Value: math.Float32frombits(v)}, false, nil
	case types.LongConst:
		v, err := r.readU64()
		if err != nil {
			return nil, false, err
		}
		return LongEntry{Value: int64(v)}, true, nil
	case types.DoubleConst:
		v, err := r.readU64()
		if err != nil {
			return nil, false, err
		}
		return DoubleEntry{Value: math.Float64frombits(v)}, true, nil
	case types.ClassRef:
		idx, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		return ClassEntry{NameIndex: idx}, false, nil
	case types.StringConst:
		idx, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		return StringEntry{Utf8Index: idx}, false, nil
	case types.FieldRef:
		c, n, err := readClassNatPair(r)
		if err != nil {
			return nil, false, err
		}
		return FieldRefEntry{ClassIndex: c, NameAndTypeIndex: n}, false, nil
	case types.MethodRef:
		c, n, err := readClassNatPair(r)
		if err != nil {
			return nil, false, err
		}
		return MethodRefEntry{ClassIndex: c, NameAndTypeIndex: n}, false, nil
	case types.InterfaceMethodRef:
		c, n, err := readClassNatPair(r)
		if err != nil {
			return nil, false, err
		}
		return InterfaceMethodRefEntry{ClassIndex: c, NameAndTypeIndex: n}, false, nil
	case types.NameAndType:
		name, desc, err := readClassNatPair(r)
		if err != nil {
			return nil, false, err
		}
		return NameAndTypeEntry{NameIndex: name, DescIndex: desc}, false, nil
	case types.MethodHandle:
		kind, err := r.readU8()
		if err != nil {
			return nil, false, err
		}
		refIdx, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		// The decoded kind and ref index belong to the pool slot being
		// filled right now, like any other entry (spec.md §9's corrected
		// reading of the source's MethodHandleInfo constructor bug).
		return MethodHandleEntry{RefKind: types.ReferenceKind(kind), RefIndex: refIdx}, false, nil
	case types.MethodType:
		idx, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		return MethodTypeEntry{DescIndex: idx}, false, nil
	case types.Dynamic:
		bsm, nat, err := readClassNatPair(r)
		if err != nil {
			return nil, false, err
		}
		return DynamicEntry{BootstrapMethodAttrIndex: bsm, NameAndTypeIndex: nat}, false, nil
	case types.InvokeDynamic:
		bsm, nat, err := readClassNatPair(r)
		if err != nil {
			return nil, false, err
		}
		return InvokeDynamicEntry{BootstrapMethodAttrIndex: bsm, NameAndTypeIndex: nat}, false, nil
	case types.Module:
		idx, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		return ModuleEntry{NameIndex: idx}, false, nil
	case types.Package:
		idx, err := r.readU16()
		if err != nil {
			return nil, false, err
		}
		return PackageEntry{NameIndex: idx}, false, nil
	default:
		return nil, false, errBadCpTag(int(tag))
	}
}

func readClassNatPair(r *reader) (uint16, uint16, error) {
	a, err := r.readU16()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.readU16()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
