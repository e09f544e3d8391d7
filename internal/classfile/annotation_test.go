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

func TestDecodeElementValueConstTags(t *testing.T) {
	for _, tag := range []byte{'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's'} {
		b := &byteBuilder{}
		b.u8(tag).u16(9)
		r := newReader(b.buf)
		v, err := decodeElementValue(r)
		require.NoError(t, err)
		assert.Equal(t, ConstValue{TagByte: tag, CpIndex: 9}, v)
		assert.Equal(t, tag, v.Tag())
	}
}

func TestDecodeElementValueEnum(t *testing.T) {
	b := &byteBuilder{}
	b.u8('e').u16(1).u16(2)
	r := newReader(b.buf)
	v, err := decodeElementValue(r)
	require.NoError(t, err)
	assert.Equal(t, EnumValue{TypeNameIndex: 1, ConstNameIndex: 2}, v)
}

func TestDecodeElementValueClass(t *testing.T) {
	b := &byteBuilder{}
	b.u8('c').u16(3)
	r := newReader(b.buf)
	v, err := decodeElementValue(r)
	require.NoError(t, err)
	assert.Equal(t, ClassValue{ClassInfoIndex: 3}, v)
}

func TestDecodeElementValueNestedAnnotation(t *testing.T) {
	b := &byteBuilder{}
	b.u8('@')
	b.u16(5) // annotation type_index
	b.u16(1) // pair count
	b.u16(1).u8('I').u16(7)

	r := newReader(b.buf)
	v, err := decodeElementValue(r)
	require.NoError(t, err)
	av, ok := v.(AnnotationValue)
	require.True(t, ok)
	assert.EqualValues(t, 5, av.Annotation.TypeIndex)
	require.Len(t, av.Annotation.Pairs, 1)
	assert.Equal(t, ConstValue{TagByte: 'I', CpIndex: 7}, av.Annotation.Pairs[0].Value)
}

func TestDecodeElementValueArrayRecursesAndCanBeEmpty(t *testing.T) {
	b := &byteBuilder{}
	b.u8('[').u16(2)
	b.u8('I').u16(1)
	b.u8('I').u16(2)

	r := newReader(b.buf)
	v, err := decodeElementValue(r)
	require.NoError(t, err)
	arr, ok := v.(ArrayValue)
	require.True(t, ok)
	assert.Equal(t, []ElementValue{
		ConstValue{TagByte: 'I', CpIndex: 1},
		ConstValue{TagByte: 'I', CpIndex: 2},
	}, arr.Values)

	empty := &byteBuilder{}
	empty.u8('[').u16(0)
	v2, err := decodeElementValue(newReader(empty.buf))
	require.NoError(t, err)
	assert.Empty(t, v2.(ArrayValue).Values)
}

func TestDecodeElementValueBadTag(t *testing.T) {
	r := newReader([]byte{0xFF})
	_, err := decodeElementValue(r)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, BadElementValueTag, de.Kind)
}

func TestDecodeAnnotationsList(t *testing.T) {
	b := &byteBuilder{}
	b.u16(2) // 2 annotations
	b.u16(1).u16(1).u16(1).u8('Z').u16(1)
	b.u16(2).u16(0)

	r := newReader(b.buf)
	anns, err := decodeAnnotations(r)
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.EqualValues(t, 1, anns[0].TypeIndex)
	require.Len(t, anns[0].Pairs, 1)
	assert.EqualValues(t, 2, anns[1].TypeIndex)
	assert.Empty(t, anns[1].Pairs)
}

func TestDecodeParameterAnnotations(t *testing.T) {
	b := &byteBuilder{}
	b.u8(2)         // num_parameters
	b.u16(1)        // param 0: 1 annotation
	b.u16(5).u16(0) // annotation{type_index=5, 0 pairs}
	b.u16(0)        // param 1: 0 annotations

	r := newReader(b.buf)
	params, err := decodeParameterAnnotations(r)
	require.NoError(t, err)
	require.Len(t, params, 2)
	require.Len(t, params[0], 1)
	assert.EqualValues(t, 5, params[0][0].TypeIndex)
	assert.Empty(t, params[1])
}
