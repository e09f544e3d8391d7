/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "strconv"

// reader is a bounds-checked, big-endian cursor over an immutable byte
// range (spec.md §4.1, component C1). It never allocates on a read and
// never returns a partial result: any read that would advance offset past
// length fails whole with UnexpectedEof.
type reader struct {
	buf    []byte
	offset int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.offset
}

func (r *reader) need(n int) error {
	if r.remaining() < n {
		return errEOF("need " + strconv.Itoa(n) + " bytes, have " + strconv.Itoa(r.remaining()))
	}
	return nil
}

func (r *reader) readU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.offset]
	r.offset++
	return b, nil
}

func (r *reader) readU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.buf[r.offset])<<8 | uint16(r.buf[r.offset+1])
	r.offset += 2
	return v, nil
}

func (r *reader) readU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := uint32(r.buf[r.offset])<<24 | uint32(r.buf[r.offset+1])<<16 |
		uint32(r.buf[r.offset+2])<<8 | uint32(r.buf[r.offset+3])
	r.offset += 4
	return v, nil
}

func (r *reader) readU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	hi, _ := r.readU32()
	lo, err := r.readU32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errEOF("negative read length")
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.offset += n
	return nil
}
