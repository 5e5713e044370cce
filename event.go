package pokerentry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

const (
	TournamentEvent_Created         = "Created"
	TournamentEvent_Enrolled        = "Enrolled"
	TournamentEvent_OpenedForPublic = "OpenedForPublic"
	TournamentEvent_Ended           = "Ended"
)

// refreshTournament bumps the update serial and returns a snapshot for
// listeners. Caller must hold the write lock.
func (te *tournamentEngine) refreshTournament(eventName string, caller common.Address) *Tournament {
	te.tournament.RefreshUpdateAt()

	te.logger.WithFields(logrus.Fields{
		"event":         eventName,
		"update_serial": te.tournament.UpdateSerial,
		"total_entries": te.tournament.State.TotalEntries,
		"caller":        caller.Hex(),
	}).Debug("emit event")

	return te.tournament.Clone()
}

// Listeners run outside the engine lock so they may call back into it.

func (te *tournamentEngine) emitEvent(snapshot *Tournament) {
	te.onTournamentUpdated(snapshot)
}

func (te *tournamentEngine) emitErrorEvent(operation string, caller common.Address, err error) {
	te.logger.WithFields(logrus.Fields{
		"operation": operation,
		"caller":    caller.Hex(),
		"reason":    Reason(err),
	}).WithError(err).Warn("operation rejected")
	te.metrics.observeRejection(te.id, operation, err)
	te.onTournamentErrorUpdated(te.GetTournament(), caller, err)
}

func (te *tournamentEngine) emitPlayerEnrolledEvent(snapshot *Tournament, entry *Entry) {
	te.metrics.observeEnrollment(te.id)
	te.onPlayerEnrolled(snapshot, entry)
	te.emitEvent(snapshot)
}

func (te *tournamentEngine) emitOpenedForPublicEvent(snapshot *Tournament) {
	te.metrics.observeOpenedForPublic(te.id)
	te.onOpenedForPublic(snapshot)
	te.emitEvent(snapshot)
}

func (te *tournamentEngine) emitTournamentEndedEvent() {
	snapshot := te.GetTournament()
	te.logger.WithField("end_at", snapshot.EndAt()).Info("tournament duration elapsed")
	te.onTournamentEnded(snapshot)
}
