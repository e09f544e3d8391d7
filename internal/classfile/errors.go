/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "fmt"

// Kind identifies one of the fatal decode-error categories of spec.md §7.
type Kind int

const (
	UnexpectedEof Kind = iota
	BadMagic
	UnsupportedMajor
	BadCpTag
	BadCpIndex
	CpKindMismatch
	BadStackMapTag
	BadElementValueTag
	BadTypeAnnotationTarget
	AttributeLengthMismatch
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEof:
		return "UnexpectedEof"
	case BadMagic:
		return "BadMagic"
	case UnsupportedMajor:
		return "UnsupportedMajor"
	case BadCpTag:
		return "BadCpTag"
	case BadCpIndex:
		return "BadCpIndex"
	case CpKindMismatch:
		return "CpKindMismatch"
	case BadStackMapTag:
		return "BadStackMapTag"
	case BadElementValueTag:
		return "BadElementValueTag"
	case BadTypeAnnotationTarget:
		return "BadTypeAnnotationTarget"
	case AttributeLengthMismatch:
		return "AttributeLengthMismatch"
	default:
		return "UnknownDecodeErrorKind"
	}
}

// DecodeError is the error type surfaced by every decode failure in this
// package. It carries the Kind plus whatever structured detail that Kind's
// documentation in spec.md §7 promises, so a caller can type-switch on Kind
// without parsing the message.
type DecodeError struct {
	Kind Kind
	// Detail fields; populated according to Kind, zero otherwise.
	Tag        int
	Index      int
	CpSize     int
	Expected   string
	Got        string
	AttrName   string
	Declared   int
	Actual     int
	TargetType int
	Major      int
	Msg        string
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case UnexpectedEof:
		return "UnexpectedEof: " + e.Msg
	case BadMagic:
		return "BadMagic: class file does not start with CAFEBABE"
	case UnsupportedMajor:
		return fmt.Sprintf("UnsupportedMajor{%d}", e.Major)
	case BadCpTag:
		return fmt.Sprintf("BadCpTag{%d}", e.Tag)
	case BadCpIndex:
		return fmt.Sprintf("BadCpIndex{index:%d, cp_size:%d}", e.Index, e.CpSize)
	case CpKindMismatch:
		return fmt.Sprintf("CpKindMismatch{expected:%s, got:%s, index:%d}", e.Expected, e.Got, e.Index)
	case BadStackMapTag:
		return fmt.Sprintf("BadStackMapTag{%d}", e.Tag)
	case BadElementValueTag:
		return fmt.Sprintf("BadElementValueTag{%d}", e.Tag)
	case BadTypeAnnotationTarget:
		return fmt.Sprintf("BadTypeAnnotationTarget{%d}", e.TargetType)
	case AttributeLengthMismatch:
		return fmt.Sprintf("AttributeLengthMismatch{name:%q, declared:%d, actual:%d}", e.AttrName, e.Declared, e.Actual)
	default:
		return "decode error: " + e.Msg
	}
}

func errEOF(msg string) error { return &DecodeError{Kind: UnexpectedEof, Msg: msg} }

func errBadMagic() error { return &DecodeError{Kind: BadMagic} }

func errUnsupportedMajor(major int) error {
	return &DecodeError{Kind: UnsupportedMajor, Major: major}
}

func errBadCpTag(tag int) error { return &DecodeError{Kind: BadCpTag, Tag: tag} }

func errBadCpIndex(index, cpSize int) error {
	return &DecodeError{Kind: BadCpIndex, Index: index, CpSize: cpSize}
}

func errCpKindMismatch(expected, got string, index int) error {
	return &DecodeError{Kind: CpKindMismatch, Expected: expected, Got: got, Index: index}
}

func errBadStackMapTag(tag int) error { return &DecodeError{Kind: BadStackMapTag, Tag: tag} }

func errBadElementValueTag(tag int) error {
	return &DecodeError{Kind: BadElementValueTag, Tag: tag}
}

func errBadTypeAnnotationTarget(targetType int) error {
	return &DecodeError{Kind: BadTypeAnnotationTarget, TargetType: targetType}
}

func errAttributeLengthMismatch(name string, declared, actual int) error {
	return &DecodeError{Kind: AttributeLengthMismatch, AttrName: name, Declared: declared, Actual: actual}
}
