/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/jacobin-corevm/corevm/internal/types"

// validateConstantPool implements spec.md §4.6 step 4: a structural pass
// over every constant-pool entry verifying that each cross-reference it
// holds resolves to an entry of the kind that reference requires. Decode
// itself never runs this; only DecodeStrict does, since most callers only
// need the cheaper per-access CpKindMismatch checks that Utf8/ClassName/
// NameAndType already perform lazily.
func validateConstantPool(cp *ConstantPool) error {
	for i := 1; i <= cp.Size(); i++ {
		entry := cp.CpIndex[i]
		if entry == nil {
			continue // never filled by decodeConstantPool; nothing to check.
		}
		if err := validateEntry(cp, i, entry); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(cp *ConstantPool, i int, entry ConstantEntry) error {
	switch e := entry.(type) {
	case ClassEntry:
		return expectKind(cp, int(e.NameIndex), types.Utf8)
	case StringEntry:
		return expectKind(cp, int(e.Utf8Index), types.Utf8)
	case FieldRefEntry:
		if err := expectKind(cp, int(e.ClassIndex), types.ClassRef); err != nil {
			return err
		}
		return expectKind(cp, int(e.NameAndTypeIndex), types.NameAndType)
	case MethodRefEntry:
		if err := expectKind(cp, int(e.ClassIndex), types.ClassRef); err != nil {
			return err
		}
		return expectKind(cp, int(e.NameAndTypeIndex), types.NameAndType)
	case InterfaceMethodRefEntry:
		if err := expectKind(cp, int(e.ClassIndex), types.ClassRef); err != nil {
			return err
		}
		return expectKind(cp, int(e.NameAndTypeIndex), types.NameAndType)
	case NameAndTypeEntry:
		if err := expectKind(cp, int(e.NameIndex), types.Utf8); err != nil {
			return err
		}
		return expectKind(cp, int(e.DescIndex), types.Utf8)
	case MethodHandleEntry:
		return validateMethodHandleRef(cp, e)
	case MethodTypeEntry:
		return expectKind(cp, int(e.DescIndex), types.Utf8)
	case DynamicEntry:
		return expectKind(cp, int(e.NameAndTypeIndex), types.NameAndType)
	case InvokeDynamicEntry:
		return expectKind(cp, int(e.NameAndTypeIndex), types.NameAndType)
	case ModuleEntry:
		return expectKind(cp, int(e.NameIndex), types.Utf8)
	case PackageEntry:
		return expectKind(cp, int(e.NameIndex), types.Utf8)
	default:
		// Utf8Entry, IntegerEntry, FloatEntry, LongEntry, DoubleEntry and the
		// UnusableEntry after a Long/Double carry no cross-references to
		// validate.
		return nil
	}
}

func expectKind(cp *ConstantPool, idx int, want types.ConstantKind) error {
	e, err := cp.Entry(idx)
	if err != nil {
		return err
	}
	if e.Kind() != want {
		return errCpKindMismatch(want.String(), e.Kind().String(), idx)
	}
	return nil
}

// validateMethodHandleRef checks the referenced entry's kind against the
// reference-kind table of spec.md §3 (GetField/GetStatic/PutField/PutStatic
// require a FieldRef; InvokeVirtual/NewInvokeSpecial require a MethodRef;
// InvokeStatic/InvokeSpecial accept a MethodRef or an InterfaceMethodRef,
// whatever the class file version; InvokeInterface requires an
// InterfaceMethodRef).
func validateMethodHandleRef(cp *ConstantPool, e MethodHandleEntry) error {
	target, err := cp.Entry(int(e.RefIndex))
	if err != nil {
		return err
	}
	switch e.RefKind {
	case types.RefGetField, types.RefGetStatic, types.RefPutField, types.RefPutStatic:
		if target.Kind() != types.FieldRef {
			return errCpKindMismatch("FieldRef", target.Kind().String(), int(e.RefIndex))
		}
	case types.RefInvokeVirtual, types.RefNewInvokeSpecial:
		if target.Kind() != types.MethodRef {
			return errCpKindMismatch("MethodRef", target.Kind().String(), int(e.RefIndex))
		}
	case types.RefInvokeStatic, types.RefInvokeSpecial:
		if target.Kind() != types.MethodRef && target.Kind() != types.InterfaceMethodRef {
			return errCpKindMismatch("MethodRef or InterfaceMethodRef", target.Kind().String(), int(e.RefIndex))
		}
	case types.RefInvokeInterface:
		if target.Kind() != types.InterfaceMethodRef {
			return errCpKindMismatch("InterfaceMethodRef", target.Kind().String(), int(e.RefIndex))
		}
	}
	return nil
}
