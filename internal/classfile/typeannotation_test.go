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

func TestDecodeTargetInfoShapes(t *testing.T) {
	cases := []struct {
		name       string
		targetType byte
		build      func(*byteBuilder)
		want       TargetInfo
	}{
		{"TypeParameter", 0x00, func(b *byteBuilder) { b.u8(3) }, TypeParameterTarget{Index: 3}},
		{"Supertype", 0x10, func(b *byteBuilder) { b.u16(7) }, SupertypeTarget{SupertypeIndex: 7}},
		{"TypeParameterBound", 0x11, func(b *byteBuilder) { b.u8(1).u8(2) }, TypeParameterBoundTarget{ParamIndex: 1, BoundIndex: 2}},
		{"Empty", 0x13, func(b *byteBuilder) {}, EmptyTarget{}},
		{"FormalParameter", 0x16, func(b *byteBuilder) { b.u8(4) }, FormalParameterTarget{Index: 4}},
		{"Throws", 0x17, func(b *byteBuilder) { b.u16(9) }, ThrowsTarget{ThrowsTypeIndex: 9}},
		{"Catch", 0x42, func(b *byteBuilder) { b.u16(2) }, CatchTarget{ExceptionTableIndex: 2}},
		{"Offset", 0x43, func(b *byteBuilder) { b.u16(100) }, OffsetTarget{Offset: 100}},
		{"TypeArgument", 0x47, func(b *byteBuilder) { b.u16(50).u8(0) }, TypeArgumentTarget{Offset: 50, TypeArgumentIndex: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &byteBuilder{}
			c.build(b)
			r := newReader(b.buf)
			got, err := decodeTargetInfo(c.targetType, r)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDecodeTargetInfoLocalvar(t *testing.T) {
	b := &byteBuilder{}
	b.u16(1)               // table length
	b.u16(0).u16(5).u16(1) // {start_pc:0, length:5, index:1}
	r := newReader(b.buf)

	got, err := decodeTargetInfo(0x40, r)
	require.NoError(t, err)
	assert.Equal(t, LocalvarTarget{Table: []LocalvarTargetEntry{{StartPc: 0, Length: 5, Index: 1}}}, got)
}

func TestDecodeTargetInfoUnknownTargetType(t *testing.T) {
	r := newReader([]byte{})
	_, err := decodeTargetInfo(0x99, r)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, BadTypeAnnotationTarget, de.Kind)
}

func TestDecodeTypePath(t *testing.T) {
	b := &byteBuilder{}
	b.u8(2)
	b.u8(0).u8(0)
	b.u8(3).u8(1)
	r := newReader(b.buf)

	path, err := decodeTypePath(r)
	require.NoError(t, err)
	assert.Equal(t, []TypePathEntry{{TypePathKind: 0, ArgumentIndex: 0}, {TypePathKind: 3, ArgumentIndex: 1}}, path)
}

func TestDecodeTypeAnnotationFull(t *testing.T) {
	b := &byteBuilder{}
	b.u8(0x10) // target_type: Supertype
	b.u16(0)   // supertype_index
	b.u8(0)    // empty type_path
	b.u16(5)   // type_index
	b.u16(0)   // 0 element-value pairs

	r := newReader(b.buf)
	ta, err := decodeTypeAnnotation(r)
	require.NoError(t, err)
	assert.Equal(t, byte(0x10), ta.TargetType)
	assert.Equal(t, SupertypeTarget{SupertypeIndex: 0}, ta.Target)
	assert.Empty(t, ta.Path)
	assert.EqualValues(t, 5, ta.TypeIndex)
	assert.Empty(t, ta.Pairs)
}

func TestDecodeTypeAnnotationsList(t *testing.T) {
	b := &byteBuilder{}
	b.u16(1)   // 1 type annotation
	b.u8(0x13) // Empty target
	b.u8(0)    // empty path
	b.u16(1)   // type_index
	b.u16(0)   // 0 pairs

	r := newReader(b.buf)
	list, err := decodeTypeAnnotations(r)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, EmptyTarget{}, list[0].Target)
}
