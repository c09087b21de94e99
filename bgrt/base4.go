package bgrt

import "strings"

var base4Code = map[byte]byte{'A': 0, 'C': 1, 'G': 2, 'T': 3, 'U': 3}
var base4Char = [4]byte{'A', 'C', 'G', 'T'}

// canBase4 reports whether seq consists only of A/C/G/T/U (case
// insensitive) and can therefore be packed 2 bits/nucleotide.
func canBase4(seq string) bool {
	for _, c := range []byte(strings.ToUpper(seq)) {
		if _, ok := base4Code[c]; !ok {
			return false
		}
	}
	return true
}

// encodeBase4 packs seq into 2-bit codes, returning the bit length and
// the packed bytes (spec §6: "varuint bit-length then packed bytes").
func encodeBase4(seq string) (bitLen uint32, packed []byte) {
	seq = strings.ToUpper(seq)
	bitLen = uint32(len(seq)) * 2
	packed = make([]byte, (len(seq)+3)/4)
	for i, c := range []byte(seq) {
		code := base4Code[c]
		byteIdx := i / 4
		shift := uint(6 - 2*(i%4))
		packed[byteIdx] |= code << shift
	}
	return
}

// decodeBase4 reverses encodeBase4.
func decodeBase4(bitLen uint32, packed []byte) string {
	n := int(bitLen / 2)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		byteIdx := i / 4
		shift := uint(6 - 2*(i%4))
		code := (packed[byteIdx] >> shift) & 0x3
		out[i] = base4Char[code]
	}
	return string(out)
}
