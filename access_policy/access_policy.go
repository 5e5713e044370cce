package access_policy

import (
	"errors"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weedbox/pokerentry/merkle"
)

var (
	ErrAlreadyOpened = errors.New("access policy: already opened for public")
)

type Policy interface {
	IsEligible(candidate common.Address, proof []common.Hash) bool
	IsMember(candidate common.Address, proof []common.Hash) bool
	OpenForPublic() error

	IsWhitelistOnly() bool
	MerkleRoot() common.Hash
}

type policy struct {
	merkleRoot common.Hash
	isPublic   atomic.Bool // false: whitelist only (預設), true: 公開報名
}

func NewPolicy(merkleRoot common.Hash) Policy {
	return &policy{
		merkleRoot: merkleRoot,
	}
}

// NewPolicyFromState restores a policy, e.g. from a persisted tournament.
func NewPolicyFromState(merkleRoot common.Hash, whitelistOnly bool) Policy {
	p := &policy{
		merkleRoot: merkleRoot,
	}
	p.isPublic.Store(!whitelistOnly)
	return p
}

/*
IsEligible 判斷地址目前是否可報名
  - 公開報名後: 任何地址皆可，忽略 proof
  - 白名單階段: 需通過 Merkle proof 驗證
*/
func (p *policy) IsEligible(candidate common.Address, proof []common.Hash) bool {
	if p.isPublic.Load() {
		return true
	}
	return p.IsMember(candidate, proof)
}

func (p *policy) IsMember(candidate common.Address, proof []common.Hash) bool {
	return merkle.VerifyAddress(p.merkleRoot, candidate, proof)
}

// OpenForPublic flips whitelist mode off. Only the first call succeeds.
func (p *policy) OpenForPublic() error {
	if !p.isPublic.CompareAndSwap(false, true) {
		return ErrAlreadyOpened
	}
	return nil
}

func (p *policy) IsWhitelistOnly() bool {
	return !p.isPublic.Load()
}

func (p *policy) MerkleRoot() common.Hash {
	return p.merkleRoot
}
