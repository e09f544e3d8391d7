/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeU16ListEmptyAndPopulated(t *testing.T) {
	r := newReader([]byte{0x00, 0x00})
	got, err := decodeU16List(r)
	require.NoError(t, err)
	assert.Empty(t, got)

	b := &byteBuilder{}
	b.u16(2).u16(7).u16(8)
	got, err = decodeU16List(newReader(b.buf))
	require.NoError(t, err)
	assert.Equal(t, []uint16{7, 8}, got)
}

// TestDecodeModuleAttribute builds one requires/exports/opens/uses/provides
// entry each and checks the fixed field order is honored.
func TestDecodeModuleAttribute(t *testing.T) {
	b := &byteBuilder{}
	b.u16(1).u16(0x20).u16(0) // module_name_index, module_flags, module_version_index

	b.u16(1)                     // requires_count
	b.u16(2).u16(0x8000).u16(0) // requires[0]{index, flags, version}

	b.u16(1)        // exports_count
	b.u16(3).u16(0) // exports[0]{index, flags}
	b.u16(1).u16(4) // exports_to_index: [4]

	b.u16(1)        // opens_count
	b.u16(5).u16(0) // opens[0]{index, flags}
	b.u16(0)        // opens_to_index: []

	b.u16(1).u16(6) // uses_index: [6]

	b.u16(1)        // provides_count
	b.u16(7)        // provides[0].provides_index
	b.u16(1).u16(8) // provides_with_index: [8]

	r := newReader(b.buf)
	mod, err := decodeModuleAttribute(r)
	require.NoError(t, err)

	assert.EqualValues(t, 1, mod.ModuleNameIndex)
	assert.EqualValues(t, 0x20, mod.ModuleFlags)
	require.Len(t, mod.Requires, 1)
	assert.Equal(t, ModuleRequires{RequiresIndex: 2, RequiresFlags: 0x8000}, mod.Requires[0])
	require.Len(t, mod.Exports, 1)
	assert.Equal(t, ModuleExports{ExportsIndex: 3, ExportsToIndex: []uint16{4}}, mod.Exports[0])
	require.Len(t, mod.Opens, 1)
	assert.Equal(t, ModuleOpens{OpensIndex: 5, OpensToIndex: []uint16{}}, mod.Opens[0])
	assert.Equal(t, []uint16{6}, mod.Uses)
	require.Len(t, mod.Provides, 1)
	assert.Equal(t, ModuleProvides{ProvidesIndex: 7, ProvidesWithIndex: []uint16{8}}, mod.Provides[0])
}
