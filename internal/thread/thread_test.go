/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobin-corevm/corevm/internal/frames"
)

func TestNewThreadHasEmptyStack(t *testing.T) {
	th := New(1, "main")
	assert.Equal(t, 0, th.Depth())
	_, err := th.CurrentFrame()
	assert.ErrorIs(t, err, ErrNoFrame)
}

func TestPushPopFrame(t *testing.T) {
	th := New(1, "main")
	f := frames.NewFrame(nil, nil, 2)
	th.PushFrame(f)
	assert.Equal(t, 1, th.Depth())

	cur, err := th.CurrentFrame()
	require.NoError(t, err)
	assert.Same(t, f, cur)

	popped, err := th.PopFrame()
	require.NoError(t, err)
	assert.Same(t, f, popped)
	assert.Equal(t, 0, th.Depth())
}

func TestPopFrameOnEmptyStackIsErrNoFrame(t *testing.T) {
	th := New(1, "main")
	_, err := th.PopFrame()
	assert.ErrorIs(t, err, ErrNoFrame)
}

func TestPushOperandRequiresCurrentFrame(t *testing.T) {
	th := New(1, "main")
	err := th.PushOperand(frames.IntValue{Value: 1})
	assert.ErrorIs(t, err, ErrNoFrame)

	f := frames.NewFrame(nil, nil, 0)
	th.PushFrame(f)
	require.NoError(t, th.PushOperand(frames.IntValue{Value: 9}))
	v, err := f.Pop()
	require.NoError(t, err)
	assert.Equal(t, frames.IntValue{Value: 9}, v)
}

func TestIncPCRequiresCurrentFrame(t *testing.T) {
	th := New(1, "main")
	assert.ErrorIs(t, th.IncPC(3), ErrNoFrame)

	f := frames.NewFrame(nil, nil, 0)
	th.PushFrame(f)
	require.NoError(t, th.IncPC(3))
	assert.Equal(t, 3, f.PC)
	require.NoError(t, th.IncPC(2))
	assert.Equal(t, 5, f.PC)
}
