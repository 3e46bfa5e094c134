package access

import (
	"time"

	"histobot/internal/stories/trials"
)

// Evaluate derives the access tier of userID for section at now. trial is the
// user's ledger record or nil. trialSection is the only section a trial unlocks.
func Evaluate(userID int64, section, trialSection string, now time.Time, allow AllowList, trial *trials.Trial) Decision {
	if allow.Contains(userID) {
		return Decision{Tier: TierFull}
	}
	if trial == nil {
		return Decision{Tier: TierNone, Reason: ReasonNoTrial}
	}

	remaining := trial.Remaining(now)
	if remaining <= 0 {
		return Decision{Tier: TierNone, Reason: ReasonExpired}
	}
	if section != trialSection {
		return Decision{Tier: TierNone, Reason: ReasonSectionLocked, Remaining: remaining}
	}
	return Decision{Tier: TierTrial, Remaining: remaining}
}

// StatusOf derives the main menu status of userID at now.
func StatusOf(userID int64, now time.Time, allow AllowList, trial *trials.Trial) Status {
	switch {
	case allow.Contains(userID):
		return Status{Kind: StatusFull}
	case trial == nil:
		return Status{Kind: StatusTrialAvailable}
	case trial.Expired(now):
		return Status{Kind: StatusTrialExpired}
	default:
		return Status{Kind: StatusTrialActive, Remaining: trial.Remaining(now)}
	}
}
