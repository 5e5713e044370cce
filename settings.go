package pokerentry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weedbox/pokerentry/currency"
	"github.com/weedbox/pokerentry/seed"
)

type TournamentSetting struct {
	ID             string         `json:"id"`              // 賽事 ID (空值時自動產生 uuid)
	Name           string         `json:"name"`            // 賽事名稱
	Owner          common.Address `json:"owner"`           // 管理者地址 (部署者)
	EntranceFee    *big.Int       `json:"entrance_fee"`    // 報名費 (wei)
	RakePercentage uint8          `json:"rake_percentage"` // 抽水百分比 0 ~ 100
	SeedCheckhash  common.Hash    `json:"seed_checkhash"`  // 洗牌種子承諾值
	MerkleRoot     common.Hash    `json:"merkle_root"`     // 白名單 Merkle Root
}

func (s TournamentSetting) Validate() error {
	if s.Owner == (common.Address{}) {
		return ErrInvalidSetting
	}

	if s.EntranceFee == nil || s.EntranceFee.Sign() < 0 {
		return ErrInvalidSetting
	}

	if s.RakePercentage > MaxRakePercentage {
		return ErrInvalidSetting
	}

	return nil
}

// NewDefaultTournamentSetting returns the 0.02 ether / 10% rake setup
// committed to DefaultSeedPhrase.
func NewDefaultTournamentSetting(owner common.Address, merkleRoot common.Hash) TournamentSetting {
	return TournamentSetting{
		Name:           "Poker Tournament",
		Owner:          owner,
		EntranceFee:    currency.MustParseEther("0.02"),
		RakePercentage: 10,
		SeedCheckhash:  seed.CheckhashString(DefaultSeedPhrase),
		MerkleRoot:     merkleRoot,
	}
}
