package seed

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/weedbox/pokerentry/merkle"
)

// Checkhash commits to a private shuffle seed as keccak256(keccak256(seed)).
// The seed itself is revealed after the tournament.
func Checkhash(seed []byte) common.Hash {
	inner := merkle.Keccak256(seed)
	return merkle.Keccak256(inner[:])
}

func CheckhashString(seed string) common.Hash {
	return Checkhash([]byte(seed))
}
