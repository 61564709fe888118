package rtfdoc

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/pkg/errors"
)

// MS-OXRTFCOMPRESSED magic numbers and dictionary sizing, adapted from the
// teacher's Decompress.
const (
	compressedMagic   = 0x75465a4c
	uncompressedMagic = 0x414c454d
	compressedDictSize = 4096
	compressedDictMask = compressedDictSize - 1
)

// compressedPrebuf seeds the LZ77 dictionary so early back-references can
// point at common RTF boilerplate without having to be spelled out in the
// compressed stream, per MS-OXRTFCOMPRESSED §2.2.
const compressedPrebuf = "{\\rtf1\\ansi\\mac\\deff0\\deftab720{\\fonttbl;}" +
	"{\\f0\\fnil \\froman \\fswiss \\fmodern \\fscript " +
	"\\fdecor MS Sans SerifSymbolArialTimes New RomanCourier" +
	"{\\colortbl\\red0\\green0\\blue0\n\r\\par " +
	"\\pard\\plain\\f0\\fs20\\b\\i\\u\\tab\\tx"

// DecompressBytes unwraps an MS-OXRTFCOMPRESSED blob (the framing Outlook
// and Exchange actually exchange RTF bodies in) into plain RTF source.
// Uncompressed-but-framed input is passed through unchanged.
func DecompressBytes(src []byte) ([]byte, error) {
	if len(src) < 16 {
		return nil, errors.New("rtfdoc: compressed-RTF header truncated")
	}

	compressedSize := binary.LittleEndian.Uint32(src[0:4])
	uncompressedSize := binary.LittleEndian.Uint32(src[4:8])
	magic := binary.LittleEndian.Uint32(src[8:12])
	crcWant := binary.LittleEndian.Uint32(src[12:16])

	if int(compressedSize) != len(src)-4 {
		return nil, errors.New("rtfdoc: compressed-RTF size field mismatch")
	}

	switch magic {
	case uncompressedMagic:
		return src[16:], nil
	case compressedMagic:
		if crc32.ChecksumIEEE(src[16:]) != crcWant {
			return nil, errors.New("rtfdoc: compressed-RTF CRC32 mismatch")
		}
		return decompressLZ77(src[16:], int(uncompressedSize))
	default:
		return nil, errors.Errorf("rtfdoc: unknown compressed-RTF magic 0x%08x", magic)
	}
}

// decompressLZ77 runs MS-OXRTFCOMPRESSED's token-based LZ77 variant: a
// flag byte's 8 bits each select a literal byte or a 12-bit-offset/4-bit-
// length back-reference into a 4096-byte ring dictionary, which is
// simulated here by indexing straight into the output buffer (the
// teacher's approach, since the referenced bytes can overlap the write
// position a plain copy wouldn't handle correctly).
func decompressLZ77(src []byte, uncompressedSize int) ([]byte, error) {
	dst := make([]byte, len(compressedPrebuf)+uncompressedSize)
	copy(dst, compressedPrebuf)
	out := len(compressedPrebuf)

	in := 0
	flagCount := 0
	flags := 0

	for {
		if flagCount&7 == 0 {
			if in >= len(src) {
				break
			}
			flags = int(src[in])
			in++
		} else {
			flags >>= 1
		}
		flagCount++

		if flags&1 == 0 {
			if in >= len(src) || out >= len(dst) {
				break
			}
			dst[out] = src[in]
			out++
			in++
			continue
		}

		if in+1 >= len(src) {
			return nil, errors.New("rtfdoc: compressed-RTF reference truncated")
		}
		b0 := int(src[in])
		in++
		b1 := int(src[in])
		in++

		offset := (b0 << 4) | (b1 >> 4)
		length := (b1 & 0xF) + 2

		offset = out&^compressedDictMask | offset
		if offset >= out {
			if offset == out {
				break // self-reference marks end of data
			}
			offset -= compressedDictSize
		}

		end := offset + length
		for offset < end {
			if out >= len(dst) || offset < 0 {
				return nil, errors.New("rtfdoc: compressed-RTF reference out of range")
			}
			dst[out] = dst[offset]
			out++
			offset++
		}
	}

	return dst[len(compressedPrebuf):out], nil
}

// DecompressReader reads an entire MS-OXRTFCOMPRESSED blob from r and
// returns a reader over its decompressed RTF source, so it can be chained
// straight into ParseReader.
func DecompressReader(r io.Reader) (io.Reader, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "rtfdoc: reading compressed-RTF input")
	}
	plain, err := DecompressBytes(compressed)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(plain), nil
}
