/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopCategory1(t *testing.T) {
	f := NewFrame(nil, nil, 0)
	f.Push(IntValue{Value: 7})
	v, err := f.Pop()
	require.NoError(t, err)
	assert.Equal(t, IntValue{Value: 7}, v)
	assert.Empty(t, f.Operand)
}

func TestPushPopCategory2Long(t *testing.T) {
	f := NewFrame(nil, nil, 0)
	f.Push(LongValue{Value: 42})
	require.Len(t, f.Operand, 2)
	assert.Equal(t, LongValue{Value: 42}, f.Operand[0])
	assert.Equal(t, LongHighValue{}, f.Operand[1])

	v, err := f.Pop()
	require.NoError(t, err)
	assert.Equal(t, LongValue{Value: 42}, v)
	assert.Empty(t, f.Operand)
}

func TestPopOrphanedHighHalfIsStackTypeMismatch(t *testing.T) {
	f := NewFrame(nil, nil, 0)
	f.Operand = []StackValue{LongHighValue{}}
	_, err := f.Pop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StackTypeMismatch")
}

func TestPopEmptyStackIsUnderflow(t *testing.T) {
	f := NewFrame(nil, nil, 0)
	_, err := f.Pop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StackUnderflow")
}

func TestSetGetLocalCategory2(t *testing.T) {
	f := NewFrame(nil, nil, 4)
	require.NoError(t, f.SetLocal(1, DoubleValue{Value: 3.5}))
	assert.Equal(t, DoubleHighValue{}, f.Locals[2])

	v, err := f.GetLocal(1)
	require.NoError(t, err)
	assert.Equal(t, DoubleValue{Value: 3.5}, v)
}

func TestLocalIndexOutOfRange(t *testing.T) {
	f := NewFrame(nil, nil, 1)
	err := f.SetLocal(5, IntValue{Value: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LocalIndexOutOfRange")
}
