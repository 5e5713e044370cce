package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/thoas/go-funk"
	"github.com/weedbox/pokerentry/merkle"
)

var (
	ErrInvalidAmount   = errors.New("ledger: invalid amount")
	ErrIndexOutOfRange = errors.New("ledger: index out of range")
	ErrEmptyLedger     = errors.New("ledger: empty ledger")
)

// Ledger is an append-only, hash-linked journal of captured entry fees.
// Receipts are never modified or removed.
type Ledger struct {
	mu       sync.RWMutex
	receipts []Receipt
	total    *big.Int
}

func NewLedger() *Ledger {
	return &Ledger{
		receipts: make([]Receipt, 0),
		total:    big.NewInt(0),
	}
}

// Append records one captured payment and returns the stored receipt.
func (l *Ledger) Append(payer common.Address, amount *big.Int, entryNumber int) (Receipt, error) {
	if amount == nil || amount.Sign() < 0 {
		return Receipt{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prevHash := common.Hash{}
	if len(l.receipts) > 0 {
		prevHash = l.receipts[len(l.receipts)-1].Hash
	}

	r := Receipt{
		ID:          uuid.New().String(),
		Index:       len(l.receipts),
		Timestamp:   time.Now().Unix(),
		Payer:       payer,
		Amount:      new(big.Int).Set(amount),
		EntryNumber: entryNumber,
		PrevHash:    prevHash,
	}
	r.Hash = calculateHash(r)

	l.receipts = append(l.receipts, r)
	l.total.Add(l.total, amount)

	return r.clone(), nil
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.receipts)
}

func (l *Ledger) Latest() (Receipt, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.receipts) == 0 {
		return Receipt{}, ErrEmptyLedger
	}
	return l.receipts[len(l.receipts)-1].clone(), nil
}

func (l *Ledger) ByIndex(index int) (Receipt, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.receipts) {
		return Receipt{}, ErrIndexOutOfRange
	}
	return l.receipts[index].clone(), nil
}

func (l *Ledger) ByPayer(payer common.Address) []Receipt {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := funk.Filter(l.receipts, func(r Receipt) bool {
		return r.Payer == payer
	}).([]Receipt)

	return funk.Map(matched, func(r Receipt) Receipt {
		return r.clone()
	}).([]Receipt)
}

// Total returns the sum of all captured payments.
func (l *Ledger) Total() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return new(big.Int).Set(l.total)
}

// Verify walks the chain checking index continuity, hash linkage and the
// running total.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := big.NewInt(0)
	prevHash := common.Hash{}
	for i, r := range l.receipts {
		if r.Index != i {
			return fmt.Errorf("receipt %d invalid: expected index %d, got %d", i, i, r.Index)
		}
		if r.PrevHash != prevHash {
			return fmt.Errorf("receipt %d invalid: prev hash mismatch", i)
		}
		if expected := calculateHash(r); r.Hash != expected {
			return fmt.Errorf("receipt %d invalid: expected hash %s, got %s", i, expected.Hex(), r.Hash.Hex())
		}
		sum.Add(sum, r.Amount)
		prevHash = r.Hash
	}

	if sum.Cmp(l.total) != 0 {
		return fmt.Errorf("total mismatch: expected %s, got %s", sum.String(), l.total.String())
	}

	return nil
}

func calculateHash(r Receipt) common.Hash {
	header := make([]byte, 24)
	binary.BigEndian.PutUint64(header[0:8], uint64(r.Index))
	binary.BigEndian.PutUint64(header[8:16], uint64(r.Timestamp))
	binary.BigEndian.PutUint64(header[16:24], uint64(r.EntryNumber))

	return merkle.Keccak256(
		header,
		r.Payer.Bytes(),
		common.LeftPadBytes(r.Amount.Bytes(), 32),
		r.PrevHash.Bytes(),
		[]byte(r.ID),
	)
}
