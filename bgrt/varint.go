package bgrt

import (
	"errors"
	"io"
)

// Variable-length unsigned integer encoding (spec §6): big-endian
// base-128 with a continuation bit, values up to 2^32-1 encoded in 1 to
// 5 bytes. Grounded on the length-prefixed varint framing used by the
// other_examples radix-cache serializer and the byte-oriented,
// explicit-error-per-field style of scigolib-hdf5's superblock decoder.

// ErrVarintTooLong is returned when a varuint would need more than 5
// bytes to represent a 32-bit value (i.e. the stream is corrupt).
var ErrVarintTooLong = errors.New("bgrt: varuint exceeds 5 bytes")

// putUvarint encodes v into the writer in the spec's big-endian
// base-128 continuation-bit format.
func putUvarint(w io.ByteWriter, v uint32) error {
	var buf [5]byte
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if v == 0 {
			break
		}
	}
	// buf currently holds little-endian 7-bit groups; the wire format is
	// big-endian, so emit in reverse with the continuation bit recomputed
	// per spec's "big-endian base-128 with continuation bit".
	for i := n - 1; i >= 0; i-- {
		b := buf[i] & 0x7f
		if i != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// getUvarint decodes a varuint from r.
func getUvarint(r io.ByteReader) (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v = (v << 7) | uint32(b&0x7f)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarintTooLong
}
