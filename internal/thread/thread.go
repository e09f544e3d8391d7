/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package thread implements the Thread half of spec.md §4.8: a stack of
// frames.Frame, each holding its own program counter, advanced one
// instruction at a time by the opcode dispatcher in internal/jvm. A new
// thread's stack is empty; operations that need a current frame return
// ErrNoFrame until PushFrame is called.
package thread

import (
	"errors"

	"github.com/jacobin-corevm/corevm/internal/frames"
)

// ErrNoFrame is returned by any operation that requires a current frame
// when the thread's frame stack is empty.
var ErrNoFrame = errors.New("thread: no current frame")

// Thread is a single JVM thread of execution: its own call stack of frames
// and nothing else shared with any other thread (spec.md §5: "Frames are
// thread-local and never shared").
type Thread struct {
	ID     int64
	Name   string
	frames []*frames.Frame
}

// New creates a thread with an empty frame stack.
func New(id int64, name string) *Thread {
	return &Thread{ID: id, Name: name}
}

// PushFrame appends f as the new current frame (spec.md §4.8).
func (t *Thread) PushFrame(f *frames.Frame) {
	t.frames = append(t.frames, f)
}

// PopFrame removes and returns the current frame, e.g. on method return or
// an uncaught throw unwinding past it.
func (t *Thread) PopFrame() (*frames.Frame, error) {
	n := len(t.frames)
	if n == 0 {
		return nil, ErrNoFrame
	}
	f := t.frames[n-1]
	t.frames = t.frames[:n-1]
	return f, nil
}

// CurrentFrame returns the top of the frame stack (spec.md §4.8).
func (t *Thread) CurrentFrame() (*frames.Frame, error) {
	n := len(t.frames)
	if n == 0 {
		return nil, ErrNoFrame
	}
	return t.frames[n-1], nil
}

// Depth reports the number of frames currently on the stack.
func (t *Thread) Depth() int {
	return len(t.frames)
}

// PushOperand appends v to the current frame's operand stack (spec.md
// §4.8).
func (t *Thread) PushOperand(v frames.StackValue) error {
	f, err := t.CurrentFrame()
	if err != nil {
		return err
	}
	f.Push(v)
	return nil
}

// IncPC advances the current frame's program counter by n bytes (spec.md
// §4.8).
func (t *Thread) IncPC(n int) error {
	f, err := t.CurrentFrame()
	if err != nil {
		return err
	}
	f.PC += n
	return nil
}
