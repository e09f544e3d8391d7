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

func TestMinimalClass(t *testing.T) {
	cf, err := Decode(minimalClassBytes())
	require.NoError(t, err)
	assert.EqualValues(t, 61, cf.MajorVersion)
	assert.EqualValues(t, 0, cf.MinorVersion)
	assert.Equal(t, 0, cf.ConstantPool.Size())
	assert.EqualValues(t, 0, cf.AccessFlags)
	assert.EqualValues(t, 0, cf.ThisClass)
	assert.EqualValues(t, 0, cf.SuperClass)
	assert.Empty(t, cf.Interfaces)
	assert.Empty(t, cf.Fields)
	assert.Empty(t, cf.Methods)
	assert.Empty(t, cf.Attributes)
}

func TestBadMagic(t *testing.T) {
	buf := minimalClassBytes()
	buf[0], buf[1], buf[2], buf[3] = 0xDE, 0xAD, 0xBE, 0xEF
	_, err := Decode(buf)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, BadMagic, de.Kind)
}

func TestUnsupportedMajor(t *testing.T) {
	b := &byteBuilder{}
	b.header(62).u16(1).u16(0).u16(0).u16(0).u16(0).u16(0).u16(0).u16(0)
	_, err := Decode(b.buf)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, UnsupportedMajor, de.Kind)
	assert.Equal(t, 62, de.Major)
}

func TestTruncatedInputIsUnexpectedEof(t *testing.T) {
	full := minimalClassBytes()
	for cut := 1; cut <= len(full); cut++ {
		truncated := full[:len(full)-cut]
		_, err := Decode(truncated)
		require.Errorf(t, err, "truncating by %d bytes should fail", cut)
		de, ok := err.(*DecodeError)
		require.True(t, ok)
		assert.Equal(t, UnexpectedEof, de.Kind)
	}
}

// TestLongOccupiesTwoSlots is spec.md §8 scenario 4: a CP of
// {Utf8 "X", Long 42, <unusable>, Class->idx 1} declared with count=5.
func TestLongOccupiesTwoSlots(t *testing.T) {
	b := &byteBuilder{}
	b.header(61)
	b.u16(5) // count=5 -> entries at 1..4

	b.u8(1).u16(1).bytes([]byte("X")) // 1: Utf8 "X"
	b.u8(5).u32(0).u32(42)            // 2: Long 42 (hi=0, lo=42)
	// index 3 auto-filled Unusable; no bytes consumed for it.
	b.u8(7).u16(1) // 4: Class -> name_index 1

	b.u16(0) // access_flags
	b.u16(4) // this -> index 4 (the Class entry)
	b.u16(0) // super
	b.u16(0).u16(0).u16(0).u16(0)

	cf, err := Decode(b.buf)
	require.NoError(t, err)
	require.Equal(t, 4, cf.ConstantPool.Size())

	e1, err := cf.ConstantPool.Entry(1)
	require.NoError(t, err)
	assert.IsType(t, Utf8Entry{}, e1)

	e2, err := cf.ConstantPool.Entry(2)
	require.NoError(t, err)
	assert.Equal(t, LongEntry{Value: 42}, e2)

	e3, err := cf.ConstantPool.Entry(3)
	require.NoError(t, err)
	assert.IsType(t, UnusableEntry{}, e3)

	e4, err := cf.ConstantPool.Entry(4)
	require.NoError(t, err)
	assert.Equal(t, ClassEntry{NameIndex: 1}, e4)

	name, err := cf.Name()
	require.NoError(t, err)
	assert.Equal(t, "X", name)
}

func TestCpCountOfOneYieldsEmptyPool(t *testing.T) {
	cf, err := Decode(minimalClassBytes())
	require.NoError(t, err)
	assert.Equal(t, 0, cf.ConstantPool.Size())
	_, err = cf.ConstantPool.Entry(1)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, BadCpIndex, de.Kind)
}

func TestCpIndexZeroAlwaysFails(t *testing.T) {
	cf, err := Decode(minimalClassBytes())
	require.NoError(t, err)
	_, err = cf.ConstantPool.Entry(0)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, BadCpIndex, de.Kind)
}

func TestDecodeIsDeterministic(t *testing.T) {
	buf := minimalClassBytes()
	cf1, err := Decode(buf)
	require.NoError(t, err)
	cf2, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, cf1.MajorVersion, cf2.MajorVersion)
	assert.Equal(t, cf1.ConstantPool.Size(), cf2.ConstantPool.Size())
	assert.Equal(t, cf1.AccessFlags, cf2.AccessFlags)
}
