/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package excnames holds the canonical names of the Java exception classes
// this core's callers are expected to raise in response to the errors it
// reports, mirroring jacobin/excNames. The core itself never constructs
// Java-level exception objects (spec.md §1 Non-goals); these constants let
// callers translate a decode or runtime error into the right Java exception
// class name without duplicating the JVM spec's naming.
package excnames

const (
	ClassFormatError     = "java/lang/ClassFormatError"
	ClassNotFoundException = "java/lang/ClassNotFoundException"
	NoClassDefFoundError = "java/lang/NoClassDefFoundError"
	UnsupportedClassVersionError = "java/lang/UnsupportedClassVersionError"
	VerifyError          = "java/lang/VerifyError"
	NullPointerException = "java/lang/NullPointerException"
	ArrayIndexOutOfBoundsException = "java/lang/ArrayIndexOutOfBoundsException"
)
