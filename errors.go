package pokerentry

import (
	"errors"

	"github.com/weedbox/pokerentry/access_policy"
)

var (
	ErrInvalidSetting   = errors.New("tournament: invalid setting")
	ErrInvalidPayment   = errors.New("tournament: invalid payment")
	ErrNotEligible      = errors.New("tournament: not eligible")
	ErrEntryCapExceeded = errors.New("tournament: entry cap exceeded")
	ErrUnauthorized     = errors.New("tournament: unauthorized")
	ErrAlreadyOpened    = access_policy.ErrAlreadyOpened
)

// Failure reasons reported to callers and tooling.
const (
	Reason_InvalidPayment   = "InvalidPayment"
	Reason_NotEligible      = "NotEligible"
	Reason_EntryCapExceeded = "EntryCapExceeded"
	Reason_Unauthorized     = "Unauthorized"
	Reason_AlreadyOpened    = "AlreadyOpened"
	Reason_InvalidSetting   = "InvalidSetting"
	Reason_Unknown          = "Unknown"
)

var reasons = []struct {
	err    error
	reason string
}{
	{err: ErrInvalidPayment, reason: Reason_InvalidPayment},
	{err: ErrNotEligible, reason: Reason_NotEligible},
	{err: ErrEntryCapExceeded, reason: Reason_EntryCapExceeded},
	{err: ErrUnauthorized, reason: Reason_Unauthorized},
	{err: ErrAlreadyOpened, reason: Reason_AlreadyOpened},
	{err: ErrInvalidSetting, reason: Reason_InvalidSetting},
}

// Reason maps an error to its failure reason code, "" for nil.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return Reason_Unknown
}
