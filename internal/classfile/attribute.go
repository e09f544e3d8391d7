/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// Attribute pairs an attribute's name (resolved once via the constant pool)
// with its decoded body, so callers can switch on Body's concrete type
// without re-resolving the name index.
type Attribute struct {
	Name string
	Body AttributeBody
}

// AttributeBody is the tagged sum over every attribute kind this package
// understands, plus CustomAttr as the fallback for names it doesn't (spec.md
// §4.6). One concrete type per named attribute means, e.g., Code's nested
// exception table and nested attribute list live only on CodeAttr, not as
// unused fields on every other kind.
type AttributeBody interface {
	attributeBody()
}

type ConstantValueAttr struct{ ConstantValueIndex uint16 }

type ExceptionTableEntry struct {
	StartPc   uint16
	EndPc     uint16
	HandlerPc uint16
	CatchType uint16
}

type CodeAttr struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

type StackMapTableAttr struct{ Frames []StackMapFrame }

type ExceptionsAttr struct{ ExceptionIndexTable []uint16 }

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags uint16
}

type InnerClassesAttr struct{ Classes []InnerClassEntry }

type EnclosingMethodAttr struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type SyntheticAttr struct{}

type DeprecatedAttr struct{}

type SignatureAttr struct{ SignatureIndex uint16 }

type SourceFileAttr struct{ SourceFileIndex uint16 }

type SourceDebugExtensionAttr struct{ DebugExtension []byte }

type LineNumberEntry struct {
	StartPc    uint16
	LineNumber uint16
}

type LineNumberTableAttr struct{ Table []LineNumberEntry }

type LocalVariableEntry struct {
	StartPc         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTableAttr struct{ Table []LocalVariableEntry }

type LocalVariableTypeEntry struct {
	StartPc        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type LocalVariableTypeTableAttr struct{ Table []LocalVariableTypeEntry }

type RuntimeVisibleAnnotationsAttr struct{ Annotations []Annotation }

type RuntimeInvisibleAnnotationsAttr struct{ Annotations []Annotation }

type RuntimeVisibleParameterAnnotationsAttr struct{ Parameters [][]Annotation }

type RuntimeInvisibleParameterAnnotationsAttr struct{ Parameters [][]Annotation }

type RuntimeVisibleTypeAnnotationsAttr struct{ Annotations []TypeAnnotation }

type RuntimeInvisibleTypeAnnotationsAttr struct{ Annotations []TypeAnnotation }

type AnnotationDefaultAttr struct{ Value ElementValue }

type BootstrapMethodEntry struct {
	BootstrapMethodRef uint16
	Arguments          []uint16
}

type BootstrapMethodsAttr struct{ Methods []BootstrapMethodEntry }

type MethodParameterEntry struct {
	NameIndex   uint16
	AccessFlags uint16
}

type MethodParametersAttr struct{ Parameters []MethodParameterEntry }

type ModuleAttr struct{ Module ModuleAttribute }

type ModulePackagesAttr struct{ PackageIndexes []uint16 }

type ModuleMainClassAttr struct{ MainClassIndex uint16 }

type NestHostAttr struct{ HostClassIndex uint16 }

type NestMembersAttr struct{ Classes []uint16 }

// RecordComponent owns its own attribute list (e.g. a Signature attribute
// for a generic component type), independent of the Record attribute's own
// attribute list (spec.md §4.6).
type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

type RecordAttr struct{ Components []RecordComponent }

type PermittedSubclassesAttr struct{ Classes []uint16 }

// CustomAttr is the fallback for any attribute_name this package does not
// recognize; it preserves the name index and raw body bytes unexamined.
type CustomAttr struct {
	NameIndex uint16
	Raw       []byte
}

func (ConstantValueAttr) attributeBody()                        {}
func (CodeAttr) attributeBody()                                 {}
func (StackMapTableAttr) attributeBody()                        {}
func (ExceptionsAttr) attributeBody()                           {}
func (InnerClassesAttr) attributeBody()                         {}
func (EnclosingMethodAttr) attributeBody()                      {}
func (SyntheticAttr) attributeBody()                            {}
func (DeprecatedAttr) attributeBody()                           {}
func (SignatureAttr) attributeBody()                            {}
func (SourceFileAttr) attributeBody()                           {}
func (SourceDebugExtensionAttr) attributeBody()                 {}
func (LineNumberTableAttr) attributeBody()                      {}
func (LocalVariableTableAttr) attributeBody()                   {}
func (LocalVariableTypeTableAttr) attributeBody()               {}
func (RuntimeVisibleAnnotationsAttr) attributeBody()            {}
func (RuntimeInvisibleAnnotationsAttr) attributeBody()          {}
func (RuntimeVisibleParameterAnnotationsAttr) attributeBody()   {}
func (RuntimeInvisibleParameterAnnotationsAttr) attributeBody() {}
func (RuntimeVisibleTypeAnnotationsAttr) attributeBody()        {}
func (RuntimeInvisibleTypeAnnotationsAttr) attributeBody()      {}
func (AnnotationDefaultAttr) attributeBody()                    {}
func (BootstrapMethodsAttr) attributeBody()                     {}
func (MethodParametersAttr) attributeBody()                     {}
func (ModuleAttr) attributeBody()                               {}
func (ModulePackagesAttr) attributeBody()                       {}
func (ModuleMainClassAttr) attributeBody()                      {}
func (NestHostAttr) attributeBody()                             {}
func (NestMembersAttr) attributeBody()                          {}
func (RecordAttr) attributeBody()                               {}
func (PermittedSubclassesAttr) attributeBody()                  {}
func (CustomAttr) attributeBody()                               {}

// decodeAttributes reads a u16-prefixed sequence of attribute_info
// structures, the shape shared by every attribute-bearing structure in the
// class file (spec.md §4.6).
func decodeAttributes(r *reader, cp *ConstantPool) ([]Attribute, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	out := make([]Attribute, 0, n)
	for i := 0; i < int(n); i++ {
		a, err := decodeAttribute(r, cp)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// decodeAttribute reads one attribute_info: name index, a u32 declared
// length, then a body whose shape is chosen by the resolved name. The
// declared length is cross-checked against the number of bytes the body
// decode actually consumed, using end_offset - start_offset (spec.md §9
// explicitly rejects the source's loc_before + loc arithmetic, which does
// not equal the number of bytes consumed whenever loc_before is nonzero).
// A mismatch is fatal (AttributeLengthMismatch) rather than silently
// trusted, since a wrong length would desynchronize every subsequent read
// in the surrounding attribute table.
func decodeAttribute(r *reader, cp *ConstantPool) (Attribute, error) {
	nameIdx, err := r.readU16()
	if err != nil {
		return Attribute{}, err
	}
	name, err := cp.Utf8(int(nameIdx))
	if err != nil {
		return Attribute{}, err
	}
	length, err := r.readU32()
	if err != nil {
		return Attribute{}, err
	}
	startOffset := r.offset
	body, err := decodeAttributeBody(name, nameIdx, r, cp, int(length))
	if err != nil {
		return Attribute{}, err
	}
	actual := r.offset - startOffset
	if actual != int(length) {
		return Attribute{}, errAttributeLengthMismatch(name, int(length), actual)
	}
	return Attribute{Name: name, Body: body}, nil
}

func decodeAttributeBody(name string, nameIdx uint16, r *reader, cp *ConstantPool, length int) (AttributeBody, error) {
	switch name {
	case "ConstantValue":
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return ConstantValueAttr{ConstantValueIndex: idx}, nil
	case "Code":
		return decodeCodeAttr(r, cp)
	case "StackMapTable":
		frames, err := decodeStackMapTable(r)
		if err != nil {
			return nil, err
		}
		return StackMapTableAttr{Frames: frames}, nil
	case "Exceptions":
		idxs, err := decodeU16List(r)
		if err != nil {
			return nil, err
		}
		return ExceptionsAttr{ExceptionIndexTable: idxs}, nil
	case "InnerClasses":
		return decodeInnerClassesAttr(r)
	case "EnclosingMethod":
		classIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		methodIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return EnclosingMethodAttr{ClassIndex: classIdx, MethodIndex: methodIdx}, nil
	case "Synthetic":
		return SyntheticAttr{}, nil
	case "Deprecated":
		return DeprecatedAttr{}, nil
	case "Signature":
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return SignatureAttr{SignatureIndex: idx}, nil
	case "SourceFile":
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return SourceFileAttr{SourceFileIndex: idx}, nil
	case "SourceDebugExtension":
		b, err := r.readBytes(length)
		if err != nil {
			return nil, err
		}
		return SourceDebugExtensionAttr{DebugExtension: b}, nil
	case "LineNumberTable":
		return decodeLineNumberTableAttr(r)
	case "LocalVariableTable":
		return decodeLocalVariableTableAttr(r)
	case "LocalVariableTypeTable":
		return decodeLocalVariableTypeTableAttr(r)
	case "RuntimeVisibleAnnotations":
		anns, err := decodeAnnotations(r)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleAnnotationsAttr{Annotations: anns}, nil
	case "RuntimeInvisibleAnnotations":
		anns, err := decodeAnnotations(r)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleAnnotationsAttr{Annotations: anns}, nil
	case "RuntimeVisibleParameterAnnotations":
		params, err := decodeParameterAnnotations(r)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleParameterAnnotationsAttr{Parameters: params}, nil
	case "RuntimeInvisibleParameterAnnotations":
		params, err := decodeParameterAnnotations(r)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleParameterAnnotationsAttr{Parameters: params}, nil
	case "RuntimeVisibleTypeAnnotations":
		anns, err := decodeTypeAnnotations(r)
		if err != nil {
			return nil, err
		}
		return RuntimeVisibleTypeAnnotationsAttr{Annotations: anns}, nil
	case "RuntimeInvisibleTypeAnnotations":
		anns, err := decodeTypeAnnotations(r)
		if err != nil {
			return nil, err
		}
		return RuntimeInvisibleTypeAnnotationsAttr{Annotations: anns}, nil
	case "AnnotationDefault":
		v, err := decodeElementValue(r)
		if err != nil {
			return nil, err
		}
		return AnnotationDefaultAttr{Value: v}, nil
	case "BootstrapMethods":
		return decodeBootstrapMethodsAttr(r)
	case "MethodParameters":
		return decodeMethodParametersAttr(r)
	case "Module":
		mod, err := decodeModuleAttribute(r)
		if err != nil {
			return nil, err
		}
		return ModuleAttr{Module: mod}, nil
	case "ModulePackages":
		idxs, err := decodeU16List(r)
		if err != nil {
			return nil, err
		}
		return ModulePackagesAttr{PackageIndexes: idxs}, nil
	case "ModuleMainClass":
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return ModuleMainClassAttr{MainClassIndex: idx}, nil
	case "NestHost":
		idx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return NestHostAttr{HostClassIndex: idx}, nil
	case "NestMembers":
		idxs, err := decodeU16List(r)
		if err != nil {
			return nil, err
		}
		return NestMembersAttr{Classes: idxs}, nil
	case "Record":
		return decodeRecordAttr(r, cp)
	case "PermittedSubclasses":
		idxs, err := decodeU16List(r)
		if err != nil {
			return nil, err
		}
		return PermittedSubclassesAttr{Classes: idxs}, nil
	default:
		b, err := r.readBytes(length)
		if err != nil {
			return nil, err
		}
		return CustomAttr{NameIndex: nameIdx, Raw: b}, nil
	}
}

// decodeCodeAttr reads the Code attribute body (spec.md §4.6): stack/locals
// sizing, the raw bytecode, the exception table, and a nested attribute
// list decoded recursively through decodeAttributes (e.g. a Code attribute
// commonly carries its own StackMapTable and LineNumberTable).
func decodeCodeAttr(r *reader, cp *ConstantPool) (AttributeBody, error) {
	maxStack, err := r.readU16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.readU16()
	if err != nil {
		return nil, err
	}
	codeLen, err := r.readU32()
	if err != nil {
		return nil, err
	}
	code, err := r.readBytes(int(codeLen))
	if err != nil {
		return nil, err
	}
	excCount, err := r.readU16()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionTableEntry, 0, excCount)
	for i := 0; i < int(excCount); i++ {
		startPc, err := r.readU16()
		if err != nil {
			return nil, err
		}
		endPc, err := r.readU16()
		if err != nil {
			return nil, err
		}
		handlerPc, err := r.readU16()
		if err != nil {
			return nil, err
		}
		catchType, err := r.readU16()
		if err != nil {
			return nil, err
		}
		excTable = append(excTable, ExceptionTableEntry{
			StartPc: startPc, EndPc: endPc, HandlerPc: handlerPc, CatchType: catchType,
		})
	}
	attrs, err := decodeAttributes(r, cp)
	if err != nil {
		return nil, err
	}
	return CodeAttr{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

func decodeInnerClassesAttr(r *reader) (AttributeBody, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	classes := make([]InnerClassEntry, 0, n)
	for i := 0; i < int(n); i++ {
		inner, err := r.readU16()
		if err != nil {
			return nil, err
		}
		outer, err := r.readU16()
		if err != nil {
			return nil, err
		}
		innerName, err := r.readU16()
		if err != nil {
			return nil, err
		}
		flags, err := r.readU16()
		if err != nil {
			return nil, err
		}
		classes = append(classes, InnerClassEntry{
			InnerClassInfoIndex: inner, OuterClassInfoIndex: outer,
			InnerNameIndex: innerName, InnerClassAccessFlags: flags,
		})
	}
	return InnerClassesAttr{Classes: classes}, nil
}

func decodeLineNumberTableAttr(r *reader) (AttributeBody, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	table := make([]LineNumberEntry, 0, n)
	for i := 0; i < int(n); i++ {
		startPc, err := r.readU16()
		if err != nil {
			return nil, err
		}
		line, err := r.readU16()
		if err != nil {
			return nil, err
		}
		table = append(table, LineNumberEntry{StartPc: startPc, LineNumber: line})
	}
	return LineNumberTableAttr{Table: table}, nil
}

func decodeLocalVariableTableAttr(r *reader) (AttributeBody, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	table := make([]LocalVariableEntry, 0, n)
	for i := 0; i < int(n); i++ {
		startPc, err := r.readU16()
		if err != nil {
			return nil, err
		}
		length, err := r.readU16()
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
		index, err := r.readU16()
		if err != nil {
			return nil, err
		}
		table = append(table, LocalVariableEntry{
			StartPc: startPc, Length: length, NameIndex: nameIdx, DescriptorIndex: descIdx, Index: index,
		})
	}
	return LocalVariableTableAttr{Table: table}, nil
}

func decodeLocalVariableTypeTableAttr(r *reader) (AttributeBody, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	table := make([]LocalVariableTypeEntry, 0, n)
	for i := 0; i < int(n); i++ {
		startPc, err := r.readU16()
		if err != nil {
			return nil, err
		}
		length, err := r.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		sigIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		index, err := r.readU16()
		if err != nil {
			return nil, err
		}
		table = append(table, LocalVariableTypeEntry{
			StartPc: startPc, Length: length, NameIndex: nameIdx, SignatureIndex: sigIdx, Index: index,
		})
	}
	return LocalVariableTypeTableAttr{Table: table}, nil
}

func decodeBootstrapMethodsAttr(r *reader) (AttributeBody, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	methods := make([]BootstrapMethodEntry, 0, n)
	for i := 0; i < int(n); i++ {
		ref, err := r.readU16()
		if err != nil {
			return nil, err
		}
		args, err := decodeU16List(r)
		if err != nil {
			return nil, err
		}
		methods = append(methods, BootstrapMethodEntry{BootstrapMethodRef: ref, Arguments: args})
	}
	return BootstrapMethodsAttr{Methods: methods}, nil
}

func decodeMethodParametersAttr(r *reader) (AttributeBody, error) {
	n, err := r.readU8()
	if err != nil {
		return nil, err
	}
	params := make([]MethodParameterEntry, 0, n)
	for i := 0; i < int(n); i++ {
		nameIdx, err := r.readU16()
		if err != nil {
			return nil, err
		}
		flags, err := r.readU16()
		if err != nil {
			return nil, err
		}
		params = append(params, MethodParameterEntry{NameIndex: nameIdx, AccessFlags: flags})
	}
	return MethodParametersAttr{Parameters: params}, nil
}

// decodeRecordAttr reads the Record attribute's component list; each
// component owns its own nested attribute list, decoded recursively
// (spec.md §4.6), independent of the Record attribute's own cross-check.
func decodeRecordAttr(r *reader, cp *ConstantPool) (AttributeBody, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	components := make([]RecordComponent, 0, n)
	for i := 0; i < int(n); i++ {
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
		components = append(components, RecordComponent{
			NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs,
		})
	}
	return RecordAttr{Components: components}, nil
}
