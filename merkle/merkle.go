package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Keccak256 returns the legacy Keccak-256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) common.Hash {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}

	var h common.Hash
	hasher.Sum(h[:0])
	return h
}

// LeafHash 白名單葉節點 = keccak256(address 20 bytes)
func LeafHash(addr common.Address) common.Hash {
	return Keccak256(addr.Bytes())
}

// HashPair combines two nodes in ascending byte order, so a proof does not
// need to carry left/right positions.
func HashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return Keccak256(a[:], b[:])
	}
	return Keccak256(b[:], a[:])
}

// ProcessProof folds the proof into the leaf and returns the rebuilt root.
func ProcessProof(leaf common.Hash, proof []common.Hash) common.Hash {
	computed := leaf
	for _, sibling := range proof {
		computed = HashPair(computed, sibling)
	}
	return computed
}

// Verify reports whether leaf is committed under root. An empty proof only
// matches a single-leaf tree whose root is the leaf itself.
func Verify(root, leaf common.Hash, proof []common.Hash) bool {
	return ProcessProof(leaf, proof) == root
}

func VerifyAddress(root common.Hash, addr common.Address, proof []common.Hash) bool {
	return Verify(root, LeafHash(addr), proof)
}
