/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeModifiedUTF8Ascii(t *testing.T) {
	assert.Equal(t, "hello", decodeModifiedUTF8([]byte("hello")))
}

func TestDecodeModifiedUTF8EmbeddedNull(t *testing.T) {
	b := []byte{'a', 0xC0, 0x80, 'b'}
	assert.Equal(t, "a\x00b", decodeModifiedUTF8(b))
}

func TestDecodeModifiedUTF8SupplementaryCharacter(t *testing.T) {
	// U+1D11E (MUSICAL SYMBOL G CLEF) as a CESU-8 surrogate pair.
	s := "\U0001D11E"
	encoded := encodeModifiedUTF8(s)
	assert.Equal(t, s, decodeModifiedUTF8(encoded))
	// Surrogate pair is 6 bytes (2x 3-byte CESU-8 halves), not 4 like UTF-8.
	assert.Len(t, encoded, 6)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain ascii", "café", "漢字", "\x00leading null"} {
		assert.Equal(t, s, decodeModifiedUTF8(encodeModifiedUTF8(s)))
	}
}
