/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// ModuleAttribute is the body of the Module attribute (spec.md §6): a
// module's own name/flags/version plus its five nested record kinds.
type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        uint16
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
	Uses               []uint16
	Provides           []ModuleProvides
}

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        uint16
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   uint16
	ExportsToIndex []uint16
}

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   uint16
	OpensToIndex []uint16
}

type ModuleProvides struct {
	ProvidesIndex     uint16
	ProvidesWithIndex []uint16
}

func decodeU16List(r *reader) ([]uint16, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, n)
	for i := 0; i < int(n); i++ {
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeModuleAttribute reads the full Module attribute body per spec.md
// §6's grammar: header fields, then requires/exports/opens/uses/provides in
// that fixed order, each its own u16-prefixed list.
func decodeModuleAttribute(r *reader) (ModuleAttribute, error) {
	nameIdx, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	flags, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	versionIdx, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}

	reqCount, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	requires := make([]ModuleRequires, 0, reqCount)
	for i := 0; i < int(reqCount); i++ {
		idx, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqFlags, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqVersionIdx, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		requires = append(requires, ModuleRequires{
			RequiresIndex:        idx,
			RequiresFlags:        reqFlags,
			RequiresVersionIndex: reqVersionIdx,
		})
	}

	expCount, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	exports := make([]ModuleExports, 0, expCount)
	for i := 0; i < int(expCount); i++ {
		idx, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		expFlags, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		toIdx, err := decodeU16List(r)
		if err != nil {
			return ModuleAttribute{}, err
		}
		exports = append(exports, ModuleExports{ExportsIndex: idx, ExportsFlags: expFlags, ExportsToIndex: toIdx})
	}

	openCount, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	opens := make([]ModuleOpens, 0, openCount)
	for i := 0; i < int(openCount); i++ {
		idx, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		openFlags, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		toIdx, err := decodeU16List(r)
		if err != nil {
			return ModuleAttribute{}, err
		}
		opens = append(opens, ModuleOpens{OpensIndex: idx, OpensFlags: openFlags, OpensToIndex: toIdx})
	}

	uses, err := decodeU16List(r)
	if err != nil {
		return ModuleAttribute{}, err
	}

	provCount, err := r.readU16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	provides := make([]ModuleProvides, 0, provCount)
	for i := 0; i < int(provCount); i++ {
		idx, err := r.readU16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		withIdx, err := decodeU16List(r)
		if err != nil {
			return ModuleAttribute{}, err
		}
		provides = append(provides, ModuleProvides{ProvidesIndex: idx, ProvidesWithIndex: withIdx})
	}

	return ModuleAttribute{
		ModuleNameIndex:    nameIdx,
		ModuleFlags:        flags,
		ModuleVersionIndex: versionIdx,
		Requires:           requires,
		Exports:            exports,
		Opens:              opens,
		Uses:               uses,
		Provides:           provides,
	}, nil
}
