package pokerentry

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// enroll runs the checks and the mutation as one step. Caller must hold the
// write lock.
func (te *tournamentEngine) enroll(req EnrollRequest) (*Entry, *Tournament, error) {
	if err := te.validateEnrollment(req); err != nil {
		return nil, nil, err
	}

	fee := te.tournament.Meta.EntranceFee
	entryNumber := te.tournament.EntriesOf(req.Caller) + 1

	// capture payment before touching counters, a failed append leaves state as is
	receipt, err := te.ledger.Append(req.Caller, fee, entryNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("capture entrance fee: %w", err)
	}

	te.tournament.AddEntry(req.Caller, fee)

	entry := &Entry{
		TournamentID: te.id,
		Player:       req.Caller,
		EntryNumber:  entryNumber,
		TotalEntries: te.tournament.State.TotalEntries,
		Receipt:      receipt,
	}

	return entry, te.refreshTournament(TournamentEvent_Enrolled, req.Caller), nil
}

func (te *tournamentEngine) validateEnrollment(req EnrollRequest) error {
	if req.Payment == nil || req.Payment.Cmp(te.tournament.Meta.EntranceFee) != 0 {
		return ErrInvalidPayment
	}

	if !te.policy.IsEligible(req.Caller, req.Proof) {
		return ErrNotEligible
	}

	if te.tournament.EntriesOf(req.Caller) >= te.tournament.Meta.MaxEntriesPerPlayer {
		return ErrEntryCapExceeded
	}

	return nil
}

// openForPublic checks the owner before the state so a non-owner always
// sees ErrUnauthorized. Caller must hold the write lock.
func (te *tournamentEngine) openForPublic(caller common.Address) (*Tournament, error) {
	if caller != te.tournament.Meta.Owner {
		return nil, ErrUnauthorized
	}

	if err := te.policy.OpenForPublic(); err != nil {
		return nil, err
	}
	te.tournament.State.WhitelistOnly = false

	return te.refreshTournament(TournamentEvent_OpenedForPublic, caller), nil
}

func (te *tournamentEngine) scheduleEnd(endAt int64) {
	err := te.tb.NewTaskWithDeadline(time.Unix(endAt, 0), func(isCancelled bool) {
		if isCancelled {
			return
		}

		te.emitTournamentEndedEvent()
	})
	if err != nil {
		te.logger.WithError(err).Warn("unable to schedule tournament end")
		return
	}
	te.endScheduled = true
}
