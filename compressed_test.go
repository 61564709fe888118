package rtfdoc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildUncompressedFrame wraps payload in an MS-OXRTFCOMPRESSED header
// using the "uncompressed" magic, whose CRC field is ignored by readers
// per MS-OXRTFCOMPRESSED §2.2.
func buildUncompressedFrame(payload []byte) []byte {
	buf := make([]byte, 16+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(12+len(payload)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[8:12], uncompressedMagic)
	binary.LittleEndian.PutUint32(buf[12:16], 0)
	copy(buf[16:], payload)
	return buf
}

func TestDecompressBytesUncompressedPassthrough(t *testing.T) {
	payload := []byte(`{\rtf1\ansi hello}`)
	out, err := DecompressBytes(buildUncompressedFrame(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompressBytesRejectsBadMagic(t *testing.T) {
	frame := buildUncompressedFrame([]byte("x"))
	binary.LittleEndian.PutUint32(frame[8:12], 0xdeadbeef)
	_, err := DecompressBytes(frame)
	assert.Error(t, err)
}

func TestDecompressBytesRejectsTruncatedHeader(t *testing.T) {
	_, err := DecompressBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestParseCompressedRoundTrip(t *testing.T) {
	payload := []byte(`{\rtf1\ansi hello}`)
	doc, err := ParseCompressed(buildUncompressedFrame(payload))
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.PlainText())
}
