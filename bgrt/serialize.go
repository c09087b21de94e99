// Serialisation for the BGRT (spec §4.4/§4.8/§6): a versioned, checksummed
// binary format with variable-length integers for every count and id,
// and fixed-width fields only for the header's floats and the checksum.
// Grounded on the
// field-by-field binary.Read/binary.Write + explicit-error-per-field
// idiom of scigolib-hdf5's superblock decoder and the length-prefixed
// framing of the other_examples radix-cache serializer.
package bgrt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/adler32"
	"io"
	"math"

	"github.com/evolbioinfo/cassis/idset"
	"github.com/evolbioinfo/cassis/namemap"
)

const (
	magicWord      = "BGRT"
	currentVersion = byte(2)
)

// ErrBadMagic is returned when the file does not start with "BGRT".
var ErrBadMagic = errors.New("bgrt: bad magic, not a BGRT file")

// ErrUnsupportedVersion is returned when the file's version byte is
// higher than this package knows how to read (spec §7 format-version
// mismatch).
var ErrUnsupportedVersion = errors.New("bgrt: unsupported format version")

// ErrChecksumMismatch is returned when the payload's Adler-32 does not
// match the stored checksum (spec §7 checksum mismatch).
var ErrChecksumMismatch = errors.New("bgrt: checksum mismatch, file rejected")

// Write serialises tree and names to w per spec §6's byte layout.
func Write(w io.Writer, tree *Tree, names *namemap.Map) error {
	var payload bytes.Buffer
	bw := bufio.NewWriter(&payload)

	if err := writeHeader(bw, tree.Params); err != nil {
		return err
	}
	if err := writeNames(bw, names); err != nil {
		return err
	}
	base4 := tree.Params.Base4Compressed
	for _, root := range tree.Roots {
		numChildren := uint32(0)
		if root != nil {
			numChildren = 1
		}
		if err := putUvarint(bw, numChildren); err != nil {
			return err
		}
		if root != nil {
			if err := writeNode(bw, root, base4); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	if _, err := out.WriteString(magicWord); err != nil {
		return err
	}
	if err := out.WriteByte(currentVersion); err != nil {
		return err
	}
	if _, err := out.Write([]byte{0, 0, 0}); err != nil {
		return err
	}

	checksum := adler32.Checksum(payload.Bytes())
	var checksumBuf [4]byte
	binary.LittleEndian.PutUint32(checksumBuf[:], checksum)
	if _, err := out.Write(checksumBuf[:]); err != nil {
		return err
	}
	if _, err := out.Write(payload.Bytes()); err != nil {
		return err
	}
	return out.Flush()
}

func writeHeader(w *bufio.Writer, p Params) error {
	base4 := uint32(0)
	if p.Base4Compressed {
		base4 = 1
	}
	for _, v := range []uint32{base4, p.NumSpecies, p.IngroupMMDist, p.OutgroupMMDist, p.MinLen, p.MaxLen} {
		if err := putUvarint(w, v); err != nil {
			return err
		}
	}
	for _, f := range []float32{p.MinGC, p.MaxGC, p.MinTemp, p.MaxTemp} {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return writeString(w, p.Comment)
}

func writeString(w *bufio.Writer, s string) error {
	if err := putUvarint(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func writeNames(w *bufio.Writer, names *namemap.Map) error {
	all := names.Names()
	if err := putUvarint(w, uint32(len(all))); err != nil {
		return err
	}
	for _, name := range all {
		if err := writeString(w, name); err != nil {
			return err
		}
	}
	return nil
}

func writeSortedSet(w *bufio.Writer, s *idset.Sorted) error {
	if err := putUvarint(w, uint32(s.Len())); err != nil {
		return err
	}
	var prev idset.Id
	for i := 0; i < s.Len(); i++ {
		v := s.At(i)
		if err := putUvarint(w, v-prev); err != nil {
			return err
		}
		prev = v
	}
	return nil
}

func writeUnorderedSet(w *bufio.Writer, u *idset.Unordered) error {
	if err := putUvarint(w, uint32(u.Len())); err != nil {
		return err
	}
	for i := 0; i < u.Len(); i++ {
		if err := putUvarint(w, u.At(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w *bufio.Writer, n *Node, base4 bool) error {
	if err := writeSortedSet(w, n.species); err != nil {
		return err
	}
	if err := writeUnorderedSet(w, n.outgroup); err != nil {
		return err
	}
	if err := putUvarint(w, uint32(len(n.signatures))); err != nil {
		return err
	}
	for _, sig := range n.signatures {
		// base4_compressed is a whole-file mode (spec §6 header flag):
		// every signature in a base4 BGRT must be pure A/C/G/T/U, since
		// the reader has no per-entry discriminator to fall back on.
		if base4 {
			bitLen, packed := encodeBase4(sig)
			if err := putUvarint(w, bitLen); err != nil {
				return err
			}
			if _, err := w.Write(packed); err != nil {
				return err
			}
			continue
		}
		if err := writeString(w, sig); err != nil {
			return err
		}
	}
	if err := putUvarint(w, uint32(len(n.children))); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := writeNode(w, c, base4); err != nil {
			return err
		}
	}
	return nil
}

// Read deserialises a BGRT file from r, verifying magic, version and
// checksum before touching the payload (spec §7: "checksum mismatch,
// file is rejected without partial state").
func Read(r io.Reader) (*Tree, *namemap.Map, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, nil, fmt.Errorf("bgrt: reading magic: %w", err)
	}
	if string(magic) != magicWord {
		return nil, nil, ErrBadMagic
	}
	version, err := br.ReadByte()
	if err != nil {
		return nil, nil, err
	}
	if version > currentVersion {
		return nil, nil, ErrUnsupportedVersion
	}
	reserved := make([]byte, 3)
	if _, err := io.ReadFull(br, reserved); err != nil {
		return nil, nil, err
	}

	var checksumBuf [4]byte
	if _, err := io.ReadFull(br, checksumBuf[:]); err != nil {
		return nil, nil, err
	}
	wantChecksum := binary.LittleEndian.Uint32(checksumBuf[:])

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, nil, err
	}
	if adler32.Checksum(rest) != wantChecksum {
		return nil, nil, ErrChecksumMismatch
	}

	pr := bufio.NewReader(bytes.NewReader(rest))
	params, err := readHeader(pr)
	if err != nil {
		return nil, nil, err
	}
	names, err := readNames(pr)
	if err != nil {
		return nil, nil, err
	}

	tree := &Tree{Params: params, Roots: make([]*Node, params.NumSpecies)}
	for i := uint32(0); i < params.NumSpecies; i++ {
		numChildren, err := getUvarint(pr)
		if err != nil {
			return nil, nil, err
		}
		if numChildren == 0 {
			continue
		}
		node, err := readNode(pr, nil, params.Base4Compressed)
		if err != nil {
			return nil, nil, err
		}
		tree.Roots[i] = node
	}
	return tree, names, nil
}

func readHeader(r *bufio.Reader) (Params, error) {
	var p Params
	vals := make([]uint32, 6)
	for i := range vals {
		v, err := getUvarint(r)
		if err != nil {
			return p, err
		}
		vals[i] = v
	}
	p.Base4Compressed = vals[0] == 1
	p.NumSpecies = vals[1]
	p.IngroupMMDist = vals[2]
	p.OutgroupMMDist = vals[3]
	p.MinLen = vals[4]
	p.MaxLen = vals[5]

	floats := make([]float32, 4)
	for i := range floats {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return p, err
		}
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))
	}
	p.MinGC, p.MaxGC, p.MinTemp, p.MaxTemp = floats[0], floats[1], floats[2], floats[3]

	comment, err := readString(r)
	if err != nil {
		return p, err
	}
	p.Comment = comment
	return p, nil
}

func readString(r *bufio.Reader) (string, error) {
	l, err := getUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readNames(r *bufio.Reader) (*namemap.Map, error) {
	size, err := getUvarint(r)
	if err != nil {
		return nil, err
	}
	m := namemap.New()
	for i := uint32(0); i < size; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		m.Append(name)
	}
	return m, nil
}

func readSortedSet(r *bufio.Reader) (*idset.Sorted, error) {
	size, err := getUvarint(r)
	if err != nil {
		return nil, err
	}
	s := &idset.Sorted{}
	var prev idset.Id
	for i := uint32(0); i < size; i++ {
		delta, err := getUvarint(r)
		if err != nil {
			return nil, err
		}
		prev += delta
		s.Insert(prev)
	}
	return s, nil
}

func readUnorderedSet(r *bufio.Reader) (*idset.Unordered, error) {
	size, err := getUvarint(r)
	if err != nil {
		return nil, err
	}
	u := &idset.Unordered{}
	for i := uint32(0); i < size; i++ {
		v, err := getUvarint(r)
		if err != nil {
			return nil, err
		}
		u.Append(v)
	}
	return u, nil
}

func readNode(r *bufio.Reader, parent *Node, base4 bool) (*Node, error) {
	species, err := readSortedSet(r)
	if err != nil {
		return nil, err
	}
	outgroup, err := readUnorderedSet(r)
	if err != nil {
		return nil, err
	}
	numSigs, err := getUvarint(r)
	if err != nil {
		return nil, err
	}
	sigs := make([]string, numSigs)
	for i := range sigs {
		if base4 {
			bitLen, err := getUvarint(r)
			if err != nil {
				return nil, err
			}
			packed := make([]byte, (bitLen+7)/8)
			if _, err := io.ReadFull(r, packed); err != nil {
				return nil, err
			}
			sigs[i] = decodeBase4(bitLen, packed)
			continue
		}
		sigs[i], err = readString(r)
		if err != nil {
			return nil, err
		}
	}
	numChildren, err := getUvarint(r)
	if err != nil {
		return nil, err
	}
	n := &Node{species: species, outgroup: outgroup, signatures: sigs, parent: parent}
	n.children = make([]*Node, numChildren)
	for i := range n.children {
		child, err := readNode(r, n, base4)
		if err != nil {
			return nil, err
		}
		n.children[i] = child
	}
	return n, nil
}
