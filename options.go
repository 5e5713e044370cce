package pokerentry

import (
	"github.com/ethereum/go-ethereum/common"
)

type TournamentEngineCallbacks struct {
	OnTournamentUpdated      func(t *Tournament)
	OnTournamentErrorUpdated func(t *Tournament, caller common.Address, err error)
	OnPlayerEnrolled         func(t *Tournament, entry *Entry)
	OnOpenedForPublic        func(t *Tournament)
	OnTournamentEnded        func(t *Tournament)
}

func NewTournamentEngineCallbacks() *TournamentEngineCallbacks {
	return &TournamentEngineCallbacks{
		OnTournamentUpdated:      func(*Tournament) {},
		OnTournamentErrorUpdated: func(*Tournament, common.Address, error) {},
		OnPlayerEnrolled:         func(*Tournament, *Entry) {},
		OnOpenedForPublic:        func(*Tournament) {},
		OnTournamentEnded:        func(*Tournament) {},
	}
}

type TournamentEngineOptions struct {
	StartAt   int64 // 開賽時間 (Seconds), UnsetValue 表示建立當下
	NotifyEnd bool  // 賽事時間到時是否觸發 OnTournamentEnded
}

func NewTournamentEngineOptions() *TournamentEngineOptions {
	return &TournamentEngineOptions{
		StartAt:   UnsetValue,
		NotifyEnd: true,
	}
}
