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

// TestAppendFrameRoundTrip is spec.md §8 scenario 6: frame byte
// FC 00 05 07 00 01 decodes as Append{offset_delta=5, locals=[Object(1)]}
// (tag 252 => append 1 local).
func TestAppendFrameRoundTrip(t *testing.T) {
	r := newReader([]byte{0xFC, 0x00, 0x05, 0x07, 0x00, 0x01})
	f, err := decodeStackMapFrame(r)
	require.NoError(t, err)

	af, ok := f.(AppendFrame)
	require.True(t, ok)
	assert.EqualValues(t, 252, af.FrameType())
	assert.EqualValues(t, 5, af.OffsetDelta)
	require.Len(t, af.Locals, 1)
	assert.Equal(t, ObjectType{CpIndex: 1}, af.Locals[0])
}

func TestSameFrame(t *testing.T) {
	r := newReader([]byte{10})
	f, err := decodeStackMapFrame(r)
	require.NoError(t, err)
	sf, ok := f.(SameFrame)
	require.True(t, ok)
	assert.EqualValues(t, 10, sf.FrameType())
}

func TestFullFrame(t *testing.T) {
	// tag 255, offset_delta=1, 1 local (Integer), 1 stack item (Top)
	r := newReader([]byte{255, 0, 1, 0, 1, 1, 0, 1, 0})
	f, err := decodeStackMapFrame(r)
	require.NoError(t, err)
	ff, ok := f.(FullFrame)
	require.True(t, ok)
	assert.EqualValues(t, 1, ff.OffsetDelta)
	assert.Equal(t, []VerificationType{IntegerType{}}, ff.Locals)
	assert.Equal(t, []VerificationType{TopType{}}, ff.Stack)
}

func TestReservedFrameTypeIsBadStackMapTag(t *testing.T) {
	r := newReader([]byte{200}) // 128-246 reserved, unused in this JVM version
	_, err := decodeStackMapFrame(r)
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, BadStackMapTag, de.Kind)
}
