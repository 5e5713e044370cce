package pokerentry

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/weedbox/pokerentry/access_policy"
	"github.com/weedbox/pokerentry/ledger"
	"github.com/weedbox/timebank"
)

type TournamentEngineOpt func(*tournamentEngine)

type TournamentEngine interface {
	// Events
	OnTournamentUpdated(fn func(*Tournament))                             // 賽事更新事件監聽器
	OnTournamentErrorUpdated(fn func(*Tournament, common.Address, error)) // 錯誤更新事件監聽器
	OnPlayerEnrolled(fn func(*Tournament, *Entry))                        // 玩家報名成功監聽器
	OnOpenedForPublic(fn func(*Tournament))                               // 開放公開報名監聽器
	OnTournamentEnded(fn func(*Tournament))                               // 賽事時間結束監聽器

	// Accessors
	GetTournament() *Tournament // 取得賽事快照
	EntranceFee() *big.Int
	RakePercentage() uint8
	SeedCheckhash() common.Hash
	MerkleRoot() common.Hash
	TournamentDuration() int64
	MaxEntriesPerPlayer() int
	WhitelistOnly() bool
	Owner() common.Address
	EntriesOf(player common.Address) int
	TotalEntries() int
	CollectedFees() *big.Int
	Receipts(player common.Address) []ledger.Receipt

	// Player Actions
	IsEligible(candidate common.Address, proof []common.Hash) bool // 報名資格預檢
	Enroll(req EnrollRequest) (*Entry, error)                      // 玩家報名

	// Owner Actions
	OpenForPublic(caller common.Address) error // 開放公開報名

	Close()
}

type tournamentEngine struct {
	lock                     sync.RWMutex
	id                       string
	options                  *TournamentEngineOptions
	tournament               *Tournament
	policy                   access_policy.Policy
	ledger                   *ledger.Ledger
	tb                       *timebank.TimeBank
	endScheduled             bool
	logger                   *logrus.Entry
	metrics                  *Metrics
	onTournamentUpdated      func(*Tournament)
	onTournamentErrorUpdated func(*Tournament, common.Address, error)
	onPlayerEnrolled         func(*Tournament, *Entry)
	onOpenedForPublic        func(*Tournament)
	onTournamentEnded        func(*Tournament)
}

// NewTournamentEngine creates the tournament from setting. The setting is
// fixed for the lifetime of the engine.
func NewTournamentEngine(options *TournamentEngineOptions, setting TournamentSetting, opts ...TournamentEngineOpt) (TournamentEngine, error) {
	if err := setting.Validate(); err != nil {
		return nil, err
	}

	if options == nil {
		options = NewTournamentEngineOptions()
	}

	id := setting.ID
	if id == "" {
		id = uuid.New().String()
	}

	startAt := options.StartAt
	if startAt == UnsetValue {
		startAt = time.Now().Unix()
	}

	callbacks := NewTournamentEngineCallbacks()
	te := &tournamentEngine{
		id:                       id,
		options:                  options,
		tournament:               NewTournament(id, setting, startAt),
		policy:                   access_policy.NewPolicy(setting.MerkleRoot),
		ledger:                   ledger.NewLedger(),
		tb:                       timebank.NewTimeBank(),
		logger:                   logrus.NewEntry(logrus.StandardLogger()),
		onTournamentUpdated:      callbacks.OnTournamentUpdated,
		onTournamentErrorUpdated: callbacks.OnTournamentErrorUpdated,
		onPlayerEnrolled:         callbacks.OnPlayerEnrolled,
		onOpenedForPublic:        callbacks.OnOpenedForPublic,
		onTournamentEnded:        callbacks.OnTournamentEnded,
	}

	for _, opt := range opts {
		opt(te)
	}
	te.logger = te.logger.WithField("tournament_id", id)

	snapshot := te.refreshTournament(TournamentEvent_Created, setting.Owner)
	te.emitEvent(snapshot)

	if options.NotifyEnd {
		te.scheduleEnd(snapshot.EndAt())
	}

	return te, nil
}

func WithLogger(logger *logrus.Entry) TournamentEngineOpt {
	return func(te *tournamentEngine) {
		te.logger = logger
	}
}

func WithMetrics(m *Metrics) TournamentEngineOpt {
	return func(te *tournamentEngine) {
		te.metrics = m
	}
}

func WithLedger(l *ledger.Ledger) TournamentEngineOpt {
	return func(te *tournamentEngine) {
		te.ledger = l
	}
}

func WithCallbacks(callbacks *TournamentEngineCallbacks) TournamentEngineOpt {
	return func(te *tournamentEngine) {
		if callbacks == nil {
			return
		}
		te.OnTournamentUpdated(callbacks.OnTournamentUpdated)
		te.OnTournamentErrorUpdated(callbacks.OnTournamentErrorUpdated)
		te.OnPlayerEnrolled(callbacks.OnPlayerEnrolled)
		te.OnOpenedForPublic(callbacks.OnOpenedForPublic)
		te.OnTournamentEnded(callbacks.OnTournamentEnded)
	}
}

func (te *tournamentEngine) OnTournamentUpdated(fn func(*Tournament)) {
	if fn != nil {
		te.onTournamentUpdated = fn
	}
}

func (te *tournamentEngine) OnTournamentErrorUpdated(fn func(*Tournament, common.Address, error)) {
	if fn != nil {
		te.onTournamentErrorUpdated = fn
	}
}

func (te *tournamentEngine) OnPlayerEnrolled(fn func(*Tournament, *Entry)) {
	if fn != nil {
		te.onPlayerEnrolled = fn
	}
}

func (te *tournamentEngine) OnOpenedForPublic(fn func(*Tournament)) {
	if fn != nil {
		te.onOpenedForPublic = fn
	}
}

func (te *tournamentEngine) OnTournamentEnded(fn func(*Tournament)) {
	if fn != nil {
		te.onTournamentEnded = fn
	}
}

func (te *tournamentEngine) GetTournament() *Tournament {
	te.lock.RLock()
	defer te.lock.RUnlock()

	return te.tournament.Clone()
}

func (te *tournamentEngine) EntranceFee() *big.Int {
	return new(big.Int).Set(te.tournament.Meta.EntranceFee)
}

func (te *tournamentEngine) RakePercentage() uint8 {
	return te.tournament.Meta.RakePercentage
}

func (te *tournamentEngine) SeedCheckhash() common.Hash {
	return te.tournament.Meta.SeedCheckhash
}

func (te *tournamentEngine) MerkleRoot() common.Hash {
	return te.tournament.Meta.MerkleRoot
}

func (te *tournamentEngine) TournamentDuration() int64 {
	return te.tournament.Meta.Duration
}

func (te *tournamentEngine) MaxEntriesPerPlayer() int {
	return te.tournament.Meta.MaxEntriesPerPlayer
}

func (te *tournamentEngine) WhitelistOnly() bool {
	return te.policy.IsWhitelistOnly()
}

func (te *tournamentEngine) Owner() common.Address {
	return te.tournament.Meta.Owner
}

func (te *tournamentEngine) EntriesOf(player common.Address) int {
	te.lock.RLock()
	defer te.lock.RUnlock()

	return te.tournament.EntriesOf(player)
}

func (te *tournamentEngine) TotalEntries() int {
	te.lock.RLock()
	defer te.lock.RUnlock()

	return te.tournament.State.TotalEntries
}

func (te *tournamentEngine) CollectedFees() *big.Int {
	te.lock.RLock()
	defer te.lock.RUnlock()

	return new(big.Int).Set(te.tournament.State.CollectedFees)
}

func (te *tournamentEngine) Receipts(player common.Address) []ledger.Receipt {
	return te.ledger.ByPayer(player)
}

func (te *tournamentEngine) IsEligible(candidate common.Address, proof []common.Hash) bool {
	return te.policy.IsEligible(candidate, proof)
}

/*
Enroll 玩家報名
  - 檢查順序: 報名費金額 -> 報名資格 -> 報名次數上限
  - 任一檢查失敗: 不改變任何狀態，款項不收取
  - 成功: 該地址報名次數 +1、總報名次數 +1、收取報名費
*/
func (te *tournamentEngine) Enroll(req EnrollRequest) (*Entry, error) {
	te.lock.Lock()
	entry, snapshot, err := te.enroll(req)
	te.lock.Unlock()

	if err != nil {
		te.emitErrorEvent("Enroll", req.Caller, err)
		return nil, err
	}

	te.emitPlayerEnrolledEvent(snapshot, entry)
	return entry, nil
}

/*
OpenForPublic 開放公開報名
  - 僅限管理者呼叫
  - 僅能成功一次，之後每次呼叫皆回傳 ErrAlreadyOpened
*/
func (te *tournamentEngine) OpenForPublic(caller common.Address) error {
	te.lock.Lock()
	snapshot, err := te.openForPublic(caller)
	te.lock.Unlock()

	if err != nil {
		te.emitErrorEvent("OpenForPublic", caller, err)
		return err
	}

	te.emitOpenedForPublicEvent(snapshot)
	return nil
}

func (te *tournamentEngine) Close() {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.endScheduled {
		te.tb.Cancel()
		te.endScheduled = false
	}
}
