package pokerentry

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weedbox/pokerentry/ledger"
)

type Tournament struct {
	ID           string           `json:"id"`
	Meta         TournamentMeta   `json:"meta"`
	State        *TournamentState `json:"state"`
	UpdateAt     int64            `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial int64            `json:"update_serial"` // 更新序列號 (數字越大越晚發生)
}

// TournamentMeta never changes once the tournament is created.
type TournamentMeta struct {
	Name                string         `json:"name"`                   // 賽事名稱
	Owner               common.Address `json:"owner"`                  // 管理者地址
	EntranceFee         *big.Int       `json:"entrance_fee"`           // 報名費 (wei)
	RakePercentage      uint8          `json:"rake_percentage"`        // 抽水百分比
	SeedCheckhash       common.Hash    `json:"seed_checkhash"`         // 洗牌種子承諾值
	MerkleRoot          common.Hash    `json:"merkle_root"`            // 白名單 Merkle Root
	Duration            int64          `json:"duration"`               // 賽事時間總長 (Seconds)
	MaxEntriesPerPlayer int            `json:"max_entries_per_player"` // 每個地址報名次數上限
}

type TournamentState struct {
	WhitelistOnly    bool                   `json:"whitelist_only"`     // 是否僅限白名單報名
	StartAt          int64                  `json:"start_at"`           // 開賽時間 (Seconds)
	EntriesByAddress map[common.Address]int `json:"entries_by_address"` // 各地址報名次數
	TotalEntries     int                    `json:"total_entries"`      // 總報名次數
	CollectedFees    *big.Int               `json:"collected_fees"`     // 已收報名費 (wei)
}

type EnrollRequest struct {
	Caller  common.Address `json:"caller"`
	Payment *big.Int       `json:"payment"` // 隨交易附上的金額 (wei)
	Proof   []common.Hash  `json:"proof"`
}

type Entry struct {
	TournamentID string         `json:"tournament_id"`
	Player       common.Address `json:"player"`
	EntryNumber  int            `json:"entry_number"`  // 該地址的第幾次報名
	TotalEntries int            `json:"total_entries"` // 報名後的總報名次數
	Receipt      ledger.Receipt `json:"receipt"`
}

func NewTournament(id string, setting TournamentSetting, startAt int64) *Tournament {
	return &Tournament{
		ID: id,
		Meta: TournamentMeta{
			Name:                setting.Name,
			Owner:               setting.Owner,
			EntranceFee:         new(big.Int).Set(setting.EntranceFee),
			RakePercentage:      setting.RakePercentage,
			SeedCheckhash:       setting.SeedCheckhash,
			MerkleRoot:          setting.MerkleRoot,
			Duration:            TournamentDuration,
			MaxEntriesPerPlayer: MaxEntriesPerPlayer,
		},
		State: &TournamentState{
			WhitelistOnly:    true,
			StartAt:          startAt,
			EntriesByAddress: make(map[common.Address]int),
			TotalEntries:     0,
			CollectedFees:    big.NewInt(0),
		},
	}
}

// Setters
func (t *Tournament) RefreshUpdateAt() {
	t.UpdateAt = time.Now().Unix()
	t.UpdateSerial++
}

func (t *Tournament) AddEntry(player common.Address, fee *big.Int) int {
	t.State.EntriesByAddress[player]++
	t.State.TotalEntries++
	t.State.CollectedFees.Add(t.State.CollectedFees, fee)
	return t.State.EntriesByAddress[player]
}

// Getters
func (t Tournament) Clone() *Tournament {
	entries := make(map[common.Address]int, len(t.State.EntriesByAddress))
	for addr, count := range t.State.EntriesByAddress {
		entries[addr] = count
	}

	meta := t.Meta
	meta.EntranceFee = new(big.Int).Set(t.Meta.EntranceFee)

	return &Tournament{
		ID:   t.ID,
		Meta: meta,
		State: &TournamentState{
			WhitelistOnly:    t.State.WhitelistOnly,
			StartAt:          t.State.StartAt,
			EntriesByAddress: entries,
			TotalEntries:     t.State.TotalEntries,
			CollectedFees:    new(big.Int).Set(t.State.CollectedFees),
		},
		UpdateAt:     t.UpdateAt,
		UpdateSerial: t.UpdateSerial,
	}
}

func (t Tournament) GetJSON() (string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (t Tournament) EntriesOf(player common.Address) int {
	return t.State.EntriesByAddress[player]
}

func (t Tournament) RemainingEntries(player common.Address) int {
	return t.Meta.MaxEntriesPerPlayer - t.EntriesOf(player)
}

func (t Tournament) EndAt() int64 {
	return time.Unix(t.State.StartAt, 0).Add(time.Second * time.Duration(t.Meta.Duration)).Unix()
}

/*
IsEnded 賽事時間是否已結束
  - 僅供查詢，報名不會因此被拒絕
*/
func (t Tournament) IsEnded() bool {
	return time.Now().Unix() > t.EndAt()
}
