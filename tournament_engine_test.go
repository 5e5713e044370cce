package pokerentry

import (
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerentry/currency"
	"github.com/weedbox/pokerentry/merkle"
	"github.com/weedbox/pokerentry/seed"
)

func TestCreateTournament(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	assert.Equal(t, currency.MustParseEther("0.02").String(), te.EntranceFee().String())
	assert.Equal(t, uint8(10), te.RakePercentage())
	assert.Equal(t, seed.CheckhashString("Poker Tournament"), te.SeedCheckhash())
	assert.Equal(t, wl.tree.Root(), te.MerkleRoot())
	assert.Equal(t, int64(1814400), te.TournamentDuration())
	assert.Equal(t, 50, te.MaxEntriesPerPlayer())
	assert.True(t, te.WhitelistOnly())
	assert.Equal(t, deployer, te.Owner())
	assert.Equal(t, 0, te.TotalEntries())
	assert.Equal(t, "0", te.CollectedFees().String())

	tournament := te.GetTournament()
	assert.NotZero(t, tournament.ID)
	assert.NotZero(t, tournament.UpdateAt)
	assert.Equal(t, int64(1), tournament.UpdateSerial)
	assert.Equal(t, tournament.State.StartAt+TournamentDuration, tournament.EndAt())
	assert.False(t, tournament.IsEnded())
}

func TestCreateTournament_InvalidSetting(t *testing.T) {
	root := merkle.Keccak256([]byte("root"))

	settings := []TournamentSetting{
		func() TournamentSetting {
			s := NewDefaultTournamentSetting(deployer, root)
			s.EntranceFee = nil
			return s
		}(),
		func() TournamentSetting {
			s := NewDefaultTournamentSetting(deployer, root)
			s.EntranceFee = big.NewInt(-1)
			return s
		}(),
		func() TournamentSetting {
			s := NewDefaultTournamentSetting(deployer, root)
			s.RakePercentage = 101
			return s
		}(),
		NewDefaultTournamentSetting(common.Address{}, root),
	}

	for _, setting := range settings {
		te, err := NewTournamentEngine(quietOptions(), setting, WithLogger(quietLogger()))
		assert.ErrorIs(t, err, ErrInvalidSetting)
		assert.Nil(t, te)
	}
}

func TestCreateTournament_SettingIsCopied(t *testing.T) {
	wl := newWhitelist(t)
	setting := NewDefaultTournamentSetting(deployer, wl.tree.Root())
	te, err := NewTournamentEngine(quietOptions(), setting, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer te.Close()

	setting.EntranceFee.SetInt64(1)
	te.EntranceFee().SetInt64(2)

	assert.Equal(t, currency.MustParseEther("0.02").String(), te.EntranceFee().String())
}

func TestIsEligible(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	for _, member := range wl.members {
		assert.True(t, te.IsEligible(member, wl.proof(t, member)))
	}
	assert.False(t, te.IsEligible(outsider, nil))
	assert.False(t, te.IsEligible(outsider, wl.proof(t, deployer)))

	require.NoError(t, te.OpenForPublic(deployer))

	assert.True(t, te.IsEligible(outsider, nil))
	assert.True(t, te.IsEligible(outsider, []common.Hash{merkle.Keccak256([]byte("garbage"))}))
	for _, member := range wl.members {
		assert.True(t, te.IsEligible(member, wl.proof(t, member)))
	}
}

func TestEnroll_WhitelistedPlayer(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)
	player := wl.members[3]

	entry, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: wl.proof(t, player)})

	assert.NoError(t, err)
	assert.Equal(t, player, entry.Player)
	assert.Equal(t, 1, entry.EntryNumber)
	assert.Equal(t, 1, entry.TotalEntries)
	assert.Equal(t, player, entry.Receipt.Payer)
	assert.Equal(t, fee(te).String(), entry.Receipt.Amount.String())
	assert.Equal(t, 1, te.EntriesOf(player))
	assert.Equal(t, 1, te.TotalEntries())
	assert.Equal(t, fee(te).String(), te.CollectedFees().String())
	assert.Len(t, te.Receipts(player), 1)
}

func TestEnroll_InvalidPayment(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)
	player := wl.members[1]
	proof := wl.proof(t, player)

	payments := []*big.Int{
		nil,
		big.NewInt(0),
		new(big.Int).Sub(fee(te), big.NewInt(1)),
		new(big.Int).Add(fee(te), big.NewInt(1)),
		currency.MustParseEther("1"),
	}

	for _, payment := range payments {
		entry, err := te.Enroll(EnrollRequest{Caller: player, Payment: payment, Proof: proof})
		assert.ErrorIs(t, err, ErrInvalidPayment)
		assert.Equal(t, Reason_InvalidPayment, Reason(err))
		assert.Nil(t, entry)
	}

	assert.Equal(t, 0, te.EntriesOf(player))
	assert.Equal(t, 0, te.TotalEntries())
	assert.Equal(t, "0", te.CollectedFees().String())
	assert.Empty(t, te.Receipts(player))
}

func TestEnroll_PaymentCheckedBeforeEligibility(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	_, err := te.Enroll(EnrollRequest{Caller: outsider, Payment: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = te.Enroll(EnrollRequest{Caller: outsider, Payment: fee(te)})
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, Reason_NotEligible, Reason(err))
}

func TestEnroll_NotEligible(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	proofs := [][]common.Hash{
		nil,
		{},
		wl.proof(t, wl.members[2]),
	}

	for _, proof := range proofs {
		_, err := te.Enroll(EnrollRequest{Caller: outsider, Payment: fee(te), Proof: proof})
		assert.ErrorIs(t, err, ErrNotEligible)
	}

	// member without proof
	_, err := te.Enroll(EnrollRequest{Caller: wl.members[2], Payment: fee(te)})
	assert.ErrorIs(t, err, ErrNotEligible)

	assert.Equal(t, 0, te.EntriesOf(outsider))
	assert.Equal(t, 0, te.TotalEntries())
}

func TestEnroll_PublicAfterOpening(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	require.NoError(t, te.OpenForPublic(deployer))

	entry, err := te.Enroll(EnrollRequest{Caller: outsider, Payment: fee(te)})
	assert.NoError(t, err)
	assert.Equal(t, 1, entry.EntryNumber)
	assert.Equal(t, 1, te.EntriesOf(outsider))
}

func TestEnroll_EntryCap(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)
	player := deployer
	proof := wl.proof(t, player)

	for i := 1; i <= MaxEntriesPerPlayer; i++ {
		entry, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: proof})
		require.NoError(t, err)
		assert.Equal(t, i, entry.EntryNumber)
	}

	entry, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: proof})
	assert.ErrorIs(t, err, ErrEntryCapExceeded)
	assert.Equal(t, Reason_EntryCapExceeded, Reason(err))
	assert.Nil(t, entry)

	assert.Equal(t, MaxEntriesPerPlayer, te.EntriesOf(player))
	assert.Equal(t, MaxEntriesPerPlayer, te.TotalEntries())
	assert.Len(t, te.Receipts(player), MaxEntriesPerPlayer)
	expectedFees := new(big.Int).Mul(fee(te), big.NewInt(MaxEntriesPerPlayer))
	assert.Equal(t, expectedFees.String(), te.CollectedFees().String())

	// other players are unaffected by one player's cap
	other := wl.members[5]
	_, err = te.Enroll(EnrollRequest{Caller: other, Payment: fee(te), Proof: wl.proof(t, other)})
	assert.NoError(t, err)
	assert.Equal(t, MaxEntriesPerPlayer+1, te.TotalEntries())
}

func TestEnroll_ConcurrentCallersRespectCap(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)
	player := wl.members[7]
	proof := wl.proof(t, player)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	capped := 0
	for i := 0; i < MaxEntriesPerPlayer*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: proof})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if err == ErrEntryCapExceeded {
				capped++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, MaxEntriesPerPlayer, succeeded)
	assert.Equal(t, MaxEntriesPerPlayer, capped)
	assert.Equal(t, MaxEntriesPerPlayer, te.EntriesOf(player))
	assert.Equal(t, MaxEntriesPerPlayer, te.TotalEntries())
}

func TestOpenForPublic_Unauthorized(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	for _, caller := range []common.Address{outsider, wl.members[1], {}} {
		err := te.OpenForPublic(caller)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, Reason_Unauthorized, Reason(err))
		assert.True(t, te.WhitelistOnly())
	}

	// a non-owner is still unauthorized once the tournament is public
	require.NoError(t, te.OpenForPublic(deployer))
	assert.ErrorIs(t, te.OpenForPublic(outsider), ErrUnauthorized)
}

func TestOpenForPublic_OnlyOnce(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	assert.NoError(t, te.OpenForPublic(deployer))
	assert.False(t, te.WhitelistOnly())
	assert.False(t, te.GetTournament().State.WhitelistOnly)

	for i := 0; i < 3; i++ {
		err := te.OpenForPublic(deployer)
		assert.ErrorIs(t, err, ErrAlreadyOpened)
		assert.Equal(t, Reason_AlreadyOpened, Reason(err))
		assert.False(t, te.WhitelistOnly())
	}
}

func TestCallbacks(t *testing.T) {
	wl := newWhitelist(t)

	var updated []*Tournament
	var enrolled []*Entry
	var failures []error
	var opened int

	callbacks := NewTournamentEngineCallbacks()
	callbacks.OnTournamentUpdated = func(tournament *Tournament) { updated = append(updated, tournament) }
	callbacks.OnPlayerEnrolled = func(tournament *Tournament, entry *Entry) { enrolled = append(enrolled, entry) }
	callbacks.OnTournamentErrorUpdated = func(tournament *Tournament, caller common.Address, err error) {
		failures = append(failures, err)
	}
	callbacks.OnOpenedForPublic = func(tournament *Tournament) {
		opened++
		assert.False(t, tournament.State.WhitelistOnly)
	}

	te := newTestEngine(t, wl, WithCallbacks(callbacks))
	player := wl.members[0]

	_, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: wl.proof(t, player)})
	require.NoError(t, err)
	_, err = te.Enroll(EnrollRequest{Caller: outsider, Payment: fee(te)})
	require.Error(t, err)
	require.NoError(t, te.OpenForPublic(deployer))

	assert.Len(t, updated, 3) // created, enrolled, opened
	assert.Len(t, enrolled, 1)
	assert.Equal(t, 1, opened)
	assert.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrNotEligible)
	for i := 1; i < len(updated); i++ {
		assert.Greater(t, updated[i].UpdateSerial, updated[i-1].UpdateSerial)
	}
}

func TestCallbacks_MayCallEngine(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)

	var entries int
	te.OnPlayerEnrolled(func(tournament *Tournament, entry *Entry) {
		entries = te.EntriesOf(entry.Player)
	})

	player := wl.members[4]
	_, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: wl.proof(t, player)})
	assert.NoError(t, err)
	assert.Equal(t, 1, entries)
}

func TestTournamentEnded_Notified(t *testing.T) {
	wl := newWhitelist(t)

	ended := make(chan *Tournament, 1)
	callbacks := NewTournamentEngineCallbacks()
	callbacks.OnTournamentEnded = func(tournament *Tournament) { ended <- tournament }

	options := NewTournamentEngineOptions()
	options.StartAt = time.Now().Unix() - TournamentDuration + 1

	te, err := NewTournamentEngine(options, NewDefaultTournamentSetting(deployer, wl.tree.Root()), WithLogger(quietLogger()), WithCallbacks(callbacks))
	require.NoError(t, err)
	t.Cleanup(te.Close)

	select {
	case tournament := <-ended:
		assert.Equal(t, options.StartAt+TournamentDuration, tournament.EndAt())
	case <-time.After(5 * time.Second):
		t.Fatal("tournament end was not notified")
	}

	// the end is informational, entry stays open
	player := wl.members[2]
	_, err = te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: wl.proof(t, player)})
	assert.NoError(t, err)
}

func TestMetrics(t *testing.T) {
	wl := newWhitelist(t)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	te := newTestEngine(t, wl, WithMetrics(m))
	id := te.GetTournament().ID
	player := wl.members[2]

	_, _ = te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: wl.proof(t, player)})
	_, _ = te.Enroll(EnrollRequest{Caller: player, Payment: big.NewInt(1), Proof: wl.proof(t, player)})
	_, _ = te.Enroll(EnrollRequest{Caller: outsider, Payment: fee(te)})
	_ = te.OpenForPublic(outsider)
	_ = te.OpenForPublic(deployer)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.enrollments.WithLabelValues(id)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rejections.WithLabelValues(id, "Enroll", Reason_InvalidPayment)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rejections.WithLabelValues(id, "Enroll", Reason_NotEligible)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rejections.WithLabelValues(id, "OpenForPublic", Reason_Unauthorized)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.openedForPublic.WithLabelValues(id)))
}

func TestGetTournament_IsSnapshot(t *testing.T) {
	wl := newWhitelist(t)
	te := newTestEngine(t, wl)
	player := wl.members[6]

	snapshot := te.GetTournament()
	_, err := te.Enroll(EnrollRequest{Caller: player, Payment: fee(te), Proof: wl.proof(t, player)})
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.EntriesOf(player))
	assert.Equal(t, 0, snapshot.State.TotalEntries)

	snapshot = te.GetTournament()
	snapshot.State.EntriesByAddress[player] = 42
	snapshot.State.CollectedFees.SetInt64(0)
	assert.Equal(t, 1, te.EntriesOf(player))
	assert.Equal(t, fee(te).String(), te.CollectedFees().String())
}
