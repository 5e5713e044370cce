package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Receipt 入場費收款紀錄
type Receipt struct {
	ID          string         `json:"id"`           // Receipt ID (uuid)
	Index       int            `json:"index"`        // 第幾筆收款 (從 0 開始)
	Timestamp   int64          `json:"timestamp"`    // 收款時間 (Seconds)
	Payer       common.Address `json:"payer"`        // 付款地址
	Amount      *big.Int       `json:"amount"`       // 收款金額 (wei)
	EntryNumber int            `json:"entry_number"` // 該地址的第幾次報名 (從 1 開始)
	PrevHash    common.Hash    `json:"prev_hash"`
	Hash        common.Hash    `json:"hash"`
}

func (r Receipt) clone() Receipt {
	c := r
	if r.Amount != nil {
		c.Amount = new(big.Int).Set(r.Amount)
	}
	return c
}
