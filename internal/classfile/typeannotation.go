/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// TypeAnnotation is one entry of RuntimeVisible/InvisibleTypeAnnotations
// (spec.md §4.4): a target_type byte selecting one of ten target_info
// payload shapes, a type_path, and the same annotation body (type index +
// element-value pairs) as a plain Annotation.
type TypeAnnotation struct {
	TargetType byte
	Target     TargetInfo
	Path       []TypePathEntry
	TypeIndex  uint16
	Pairs      []ElementValuePair
}

// TargetInfo is the tagged sum over the ten target_info shapes (spec.md
// §4.4 table). The original C++ source copies these through a single
// union-like struct whose copy_from function mis-assigns
// type_parameter_bound_target for several of the shapes (spec.md §9);
// representing each shape as its own Go type makes that entire class of bug
// structurally impossible; there is no shared field for a copy to land in
// the wrong place.
type TargetInfo interface {
	targetInfo()
}

// TypeParameterTarget: class or method type parameter declarations
// (target_type 0x00, 0x01).
type TypeParameterTarget struct{ Index byte }

// SupertypeTarget: extends/implements clause (target_type 0x10).
type SupertypeTarget struct{ SupertypeIndex uint16 }

// TypeParameterBoundTarget: type parameter bound (target_type 0x11, 0x12).
type TypeParameterBoundTarget struct {
	ParamIndex byte
	BoundIndex byte
}

// EmptyTarget: field type, return type, and receiver type declarations,
// which carry no further payload (target_type 0x13, 0x14, 0x15).
type EmptyTarget struct{}

// FormalParameterTarget: formal parameter declarations (target_type 0x16).
type FormalParameterTarget struct{ Index byte }

// ThrowsTarget: throws clause (target_type 0x17).
type ThrowsTarget struct{ ThrowsTypeIndex uint16 }

// LocalvarTarget: local variable / resource variable declarations
// (target_type 0x40, 0x41). Each table entry names a bytecode range plus a
// local-variable slot index, so a scope may cover more than one contiguous
// range.
type LocalvarTarget struct {
	Table []LocalvarTargetEntry
}

type LocalvarTargetEntry struct {
	StartPc uint16
	Length  uint16
	Index   uint16
}

// CatchTarget: catch clauses (target_type 0x42).
type CatchTarget struct{ ExceptionTableIndex uint16 }

// OffsetTarget: instanceof/new/method-reference expressions (target_type
// 0x43, 0x44, 0x45, 0x46).
type OffsetTarget struct{ Offset uint16 }

// TypeArgumentTarget: generic/parameterized type in cast or invocation
// (target_type 0x47, 0x48, 0x49, 0x4A, 0x4B).
type TypeArgumentTarget struct {
	Offset            uint16
	TypeArgumentIndex byte
}

func (TypeParameterTarget) targetInfo()      {}
func (SupertypeTarget) targetInfo()          {}
func (TypeParameterBoundTarget) targetInfo() {}
func (EmptyTarget) targetInfo()              {}
func (FormalParameterTarget) targetInfo()    {}
func (ThrowsTarget) targetInfo()             {}
func (LocalvarTarget) targetInfo()           {}
func (CatchTarget) targetInfo()              {}
func (OffsetTarget) targetInfo()             {}
func (TypeArgumentTarget) targetInfo()       {}

// TypePathEntry is one step of a type_path (spec.md §4.4): which kind of
// nesting the path descends through, plus a type argument index used only
// by the TypeArgument path kind.
type TypePathEntry struct {
	TypePathKind  byte
	ArgumentIndex byte
}

func decodeTargetInfo(targetType byte, r *reader) (TargetInfo, error) {
	switch targetType {
	case 0x00, 0x01:
		idx, err := r.readU8()
		if err != nil {
			return nil, err
		}
		return TypeParameterTarget{Index: idx}, nil
	case 0x10:
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return SupertypeTarget{SupertypeIndex: idx}, nil
	case 0x11, 0x12:
		paramIdx, err := r.readU8()
		if err != nil {
			return nil, err
		}
		boundIdx, err := r.readU8()
		if err != nil {
			return nil, err
		}
		return TypeParameterBoundTarget{ParamIndex: paramIdx, BoundIndex: boundIdx}, nil
	case 0x13, 0x14, 0x15:
		return EmptyTarget{}, nil
	case 0x16:
		idx, err := r.readU8()
		if err != nil {
			return nil, err
		}
		return FormalParameterTarget{Index: idx}, nil
	case 0x17:
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return ThrowsTarget{ThrowsTypeIndex: idx}, nil
	case 0x40, 0x41:
		n, err := r.readU16()
		if err != nil {
			return nil, err
		}
		table := make([]LocalvarTargetEntry, 0, n)
		for i := 0; i < int(n); i++ {
			startPc, err := r.readU16()
			if err != nil {
				return nil, err
			}
			length, err := r.readU16()
			if err != nil {
				return nil, err
			}
			index, err := r.readU16()
			if err != nil {
				return nil, err
			}
			table = append(table, LocalvarTargetEntry{StartPc: startPc, Length: length, Index: index})
		}
		return LocalvarTarget{Table: table}, nil
	case 0x42:
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return CatchTarget{ExceptionTableIndex: idx}, nil
	case 0x43, 0x44, 0x45, 0x46:
		off, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return OffsetTarget{Offset: off}, nil
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		off, err := r.readU16()
		if err != nil {
			return nil, err
		}
		argIdx, err := r.readU8()
		if err != nil {
			return nil, err
		}
		return TypeArgumentTarget{Offset: off, TypeArgumentIndex: argIdx}, nil
	default:
		return nil, errBadTypeAnnotationTarget(int(targetType))
	}
}

func decodeTypePath(r *reader) ([]TypePathEntry, error) {
	n, err := r.readU8()
	if err != nil {
		return nil, err
	}
	path := make([]TypePathEntry, 0, n)
	for i := 0; i < int(n); i++ {
		kind, err := r.readU8()
		if err != nil {
			return nil, err
		}
		argIdx, err := r.readU8()
		if err != nil {
			return nil, err
		}
		path = append(path, TypePathEntry{TypePathKind: kind, ArgumentIndex: argIdx})
	}
	return path, nil
}

// decodeTypeAnnotation reads one type_annotation structure in full:
// target_type, the matching target_info shape, type_path, type_index, and
// element-value pairs (spec.md §4.4).
func decodeTypeAnnotation(r *reader) (TypeAnnotation, error) {
	targetType, err := r.readU8()
	if err != nil {
		return TypeAnnotation{}, err
	}
	target, err := decodeTargetInfo(targetType, r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	path, err := decodeTypePath(r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	typeIdx, err := r.readU16()
	if err != nil {
		return TypeAnnotation{}, err
	}
	n, err := r.readU16()
	if err != nil {
		return TypeAnnotation{}, err
	}
	pairs := make([]ElementValuePair, 0, n)
	for i := 0; i < int(n); i++ {
		nameIdx, err := r.readU16()
		if err != nil {
			return TypeAnnotation{}, err
		}
		val, err := decodeElementValue(r)
		if err != nil {
			return TypeAnnotation{}, err
		}
		pairs = append(pairs, ElementValuePair{NameIndex: nameIdx, Value: val})
	}
	return TypeAnnotation{
		TargetType: targetType,
		Target:     target,
		Path:       path,
		TypeIndex:  typeIdx,
		Pairs:      pairs,
	}, nil
}

// decodeTypeAnnotations reads the u16-prefixed sequence of type_annotation
// structures shared by RuntimeVisibleTypeAnnotations and its invisible
// sibling (spec.md §4.4).
func decodeTypeAnnotations(r *reader) ([]TypeAnnotation, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	out := make([]TypeAnnotation, 0, n)
	for i := 0; i < int(n); i++ {
		ta, err := decodeTypeAnnotation(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ta)
	}
	return out, nil
}
