/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frames

import "github.com/jacobin-corevm/corevm/internal/classfile"

// Frame is one method invocation's execution state: its local-variable
// array, operand stack, the class it executes against, and a borrowed view
// of its method's code bytes (spec.md §4.7, §9 "Frames are created on
// invoke and destroyed on return/throw").
type Frame struct {
	Class   *classfile.ClassFile
	Code    []byte
	PC      int
	Locals  []StackValue
	Operand []StackValue
}

// NewFrame allocates a frame with numLocals local-variable slots (each
// initially nil until written) ready to execute code against class cf.
func NewFrame(cf *classfile.ClassFile, code []byte, numLocals int) *Frame {
	return &Frame{
		Class:  cf,
		Code:   code,
		Locals: make([]StackValue, numLocals),
	}
}

// Push appends v to the operand stack. For a category-2 value this pushes
// the value then its high-half sentinel, in that order, so Pop can always
// assume the invariant holds for anything Push put there (spec.md §4.7).
func (f *Frame) Push(v StackValue) {
	f.Operand = append(f.Operand, v)
	switch v.(type) {
	case LongValue:
		f.Operand = append(f.Operand, LongHighValue{})
	case DoubleValue:
		f.Operand = append(f.Operand, DoubleHighValue{})
	}
}

// Pop removes and returns the top value. A category-2 value sits under its
// high-half sentinel (Push's [value, HighHalf] order), so Pop expects the
// high half on top and the matching low value directly beneath it; any other
// shape (a bare low value with no high half above it, or a mismatched pair)
// is a StackTypeMismatch rather than a silently wrong value.
func (f *Frame) Pop() (StackValue, error) {
	n := len(f.Operand)
	if n == 0 {
		return nil, errStackUnderflow("pop on empty operand stack")
	}
	top := f.Operand[n-1]
	switch top.(type) {
	case LongHighValue, DoubleHighValue:
		if n < 2 {
			return nil, errStackTypeMismatch("category-2 high half with no value beneath it")
		}
		low := f.Operand[n-2]
		ok := false
		switch top.(type) {
		case LongHighValue:
			_, ok = low.(LongValue)
		case DoubleHighValue:
			_, ok = low.(DoubleValue)
		}
		if !ok {
			return nil, errStackTypeMismatch("category-2 high half missing its matching value")
		}
		f.Operand = f.Operand[:n-2]
		return low, nil
	}
	if IsCategory2(top) {
		return nil, errStackTypeMismatch("category-2 value on top of stack without its high half")
	}
	f.Operand = f.Operand[:n-1]
	return top, nil
}

// SetLocal writes v into local-variable slot i, expanding it across (i,
// i+1) for a category-2 value (spec.md §4.7: "category-2 values occupy (i,
// i+1)").
func (f *Frame) SetLocal(i int, v StackValue) error {
	if i < 0 || i >= len(f.Locals) {
		return errLocalIndexOutOfRange(i, len(f.Locals))
	}
	f.Locals[i] = v
	if IsCategory2(v) {
		if i+1 >= len(f.Locals) {
			return errLocalIndexOutOfRange(i+1, len(f.Locals))
		}
		switch v.(type) {
		case LongValue:
			f.Locals[i+1] = LongHighValue{}
		case DoubleValue:
			f.Locals[i+1] = DoubleHighValue{}
		}
	}
	return nil
}

// GetLocal reads local-variable slot i. For a category-2 value this checks
// that slot i+1 holds the matching high-half sentinel.
func (f *Frame) GetLocal(i int) (StackValue, error) {
	if i < 0 || i >= len(f.Locals) {
		return nil, errLocalIndexOutOfRange(i, len(f.Locals))
	}
	v := f.Locals[i]
	if IsCategory2(v) {
		if i+1 >= len(f.Locals) {
			return nil, errLocalIndexOutOfRange(i+1, len(f.Locals))
		}
		high := f.Locals[i+1]
		ok := false
		switch v.(type) {
		case LongValue:
			_, ok = high.(LongHighValue)
		case DoubleValue:
			_, ok = high.(DoubleHighValue)
		}
		if !ok {
			return nil, errStackTypeMismatch("local category-2 value missing its high half")
		}
	}
	return v, nil
}
