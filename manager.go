package pokerentry

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrManagerTournamentNotFound = errors.New("manager: tournament not found")
	ErrManagerTournamentExists   = errors.New("manager: tournament already exists")
)

type Manager interface {
	Reset()

	// TournamentEngine Actions
	GetTournamentEngine(tournamentID string) (TournamentEngine, error)
	CreateTournament(options *TournamentEngineOptions, callbacks *TournamentEngineCallbacks, setting TournamentSetting) (*Tournament, error)
	CloseTournament(tournamentID string) error
	ListTournamentIDs() []string

	// Player Actions
	IsEligible(tournamentID string, candidate common.Address, proof []common.Hash) (bool, error)
	Enroll(tournamentID string, req EnrollRequest) (*Entry, error)

	// Owner Actions
	OpenForPublic(tournamentID string, caller common.Address) error
}

type ManagerOpt func(*manager)

type manager struct {
	tournamentEngines sync.Map
	engineOpts        []TournamentEngineOpt
}

func NewManager(opts ...ManagerOpt) Manager {
	m := &manager{
		tournamentEngines: sync.Map{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithEngineOptions applies opts to every tournament the manager creates.
func WithEngineOptions(opts ...TournamentEngineOpt) ManagerOpt {
	return func(m *manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

func (m *manager) Reset() {
	m.tournamentEngines.Range(func(key, value interface{}) bool {
		value.(TournamentEngine).Close()
		m.tournamentEngines.Delete(key)
		return true
	})
}

func (m *manager) GetTournamentEngine(tournamentID string) (TournamentEngine, error) {
	tournamentEngine, exist := m.tournamentEngines.Load(tournamentID)
	if !exist {
		return nil, ErrManagerTournamentNotFound
	}
	return tournamentEngine.(TournamentEngine), nil
}

func (m *manager) CreateTournament(options *TournamentEngineOptions, callbacks *TournamentEngineCallbacks, setting TournamentSetting) (*Tournament, error) {
	if setting.ID != "" {
		if _, exist := m.tournamentEngines.Load(setting.ID); exist {
			return nil, ErrManagerTournamentExists
		}
	}

	opts := append([]TournamentEngineOpt{}, m.engineOpts...)
	opts = append(opts, WithCallbacks(callbacks))

	tournamentEngine, err := NewTournamentEngine(options, setting, opts...)
	if err != nil {
		return nil, err
	}

	tournament := tournamentEngine.GetTournament()
	if _, loaded := m.tournamentEngines.LoadOrStore(tournament.ID, tournamentEngine); loaded {
		tournamentEngine.Close()
		return nil, ErrManagerTournamentExists
	}

	return tournament, nil
}

func (m *manager) CloseTournament(tournamentID string) error {
	tournamentEngine, err := m.GetTournamentEngine(tournamentID)
	if err != nil {
		return ErrManagerTournamentNotFound
	}

	tournamentEngine.Close()
	m.tournamentEngines.Delete(tournamentID)
	return nil
}

func (m *manager) ListTournamentIDs() []string {
	ids := make([]string, 0)
	m.tournamentEngines.Range(func(key, value interface{}) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids
}

func (m *manager) IsEligible(tournamentID string, candidate common.Address, proof []common.Hash) (bool, error) {
	tournamentEngine, err := m.GetTournamentEngine(tournamentID)
	if err != nil {
		return false, ErrManagerTournamentNotFound
	}

	return tournamentEngine.IsEligible(candidate, proof), nil
}

func (m *manager) Enroll(tournamentID string, req EnrollRequest) (*Entry, error) {
	tournamentEngine, err := m.GetTournamentEngine(tournamentID)
	if err != nil {
		return nil, ErrManagerTournamentNotFound
	}

	return tournamentEngine.Enroll(req)
}

func (m *manager) OpenForPublic(tournamentID string, caller common.Address) error {
	tournamentEngine, err := m.GetTournamentEngine(tournamentID)
	if err != nil {
		return ErrManagerTournamentNotFound
	}

	return tournamentEngine.OpenForPublic(caller)
}
