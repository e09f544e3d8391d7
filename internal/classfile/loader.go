/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// MappedClass bundles a decoded ClassFile with the memory mapping its Code,
// SourceDebugExtension and custom-attribute byte slices borrow into. Closing it unmaps the file;
// after Close, the ClassFile's borrowed slices must not be read (spec.md
// §9, "Borrowed vs owned bytes": the ClassFile must either extend the
// mapping's lifetime or copy the data - this type chooses the former).
type MappedClass struct {
	*ClassFile
	mapping mmap.MMap
	file    *os.File
}

// Close unmaps the backing file and releases its file descriptor.
func (m *MappedClass) Close() error {
	if err := m.mapping.Unmap(); err != nil {
		return err
	}
	return m.file.Close()
}

// MapFile memory-maps path read-only and returns its bytes without
// decoding, for callers (such as registry.Loader implementations) that want
// Decode/DecodeStrict to own the result directly. The mapping is
// intentionally never unmapped: a class loaded into the VM Registry lives
// for the life of the process, the same lifetime its borrowed Code and
// other raw attribute slices need.
func MapFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// LoadFile memory-maps path read-only and decodes it as a class file,
// keeping the mapping alive in the returned MappedClass for as long as the
// caller holds it (spec.md §4.6/§9). strict selects DecodeStrict.
func LoadFile(path string, strict bool) (*MappedClass, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	var cf *ClassFile
	if strict {
		cf, err = DecodeStrict(data)
	} else {
		cf, err = Decode(data)
	}
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	return &MappedClass{ClassFile: cf, mapping: data, file: f}, nil
}
