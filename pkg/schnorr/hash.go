package schnorr

import (
	"encoding/binary"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// taggedHash computes H(H(tag) || H(tag) || msgs...).
func taggedHash(newHash func() hash.Hash, tag []byte, msgs ...[]byte) []byte {
	h := newHash()
	h.Write(tag)
	tagDigest := h.Sum(nil)

	h.Reset()
	h.Write(tagDigest)
	h.Write(tagDigest)
	for _, m := range msgs {
		h.Write(m)
	}
	return h.Sum(nil)
}

// nonceDigest commits to the public inputs of nonce derivation. Every item is
// length prefixed so that different item lists never share an encoding.
func nonceDigest(tag []byte, public [][]byte) *chainhash.Hash {
	encoded := make([][]byte, 0, 2*len(public))
	for _, item := range public {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(item)))
		encoded = append(encoded, n[:], item)
	}
	return chainhash.TaggedHash(tag, encoded...)
}
