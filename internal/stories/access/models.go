package access

import "time"

// Tier is the access level derived for a user and a section. It is never stored.
type Tier string

const (
	TierNone  Tier = "none"
	TierTrial Tier = "trial"
	TierFull  Tier = "full"
)

// Reason explains a TierNone decision.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoTrial       Reason = "no_trial"
	ReasonExpired       Reason = "expired"
	ReasonSectionLocked Reason = "section_locked"
)

// Decision is the outcome of an access check.
type Decision struct {
	Tier   Tier
	Reason Reason
	// Remaining is the trial time left; set only when a trial record exists and is active.
	Remaining time.Duration
}

func (d Decision) Allowed() bool {
	return d.Tier != TierNone
}

// StatusKind describes the user's standing as shown on the main menu.
type StatusKind string

const (
	StatusFull           StatusKind = "full"
	StatusTrialActive    StatusKind = "trial_active"
	StatusTrialExpired   StatusKind = "trial_expired"
	StatusTrialAvailable StatusKind = "trial_available"
)

type Status struct {
	Kind      StatusKind
	Remaining time.Duration
}

// CanActivateTrial reports whether the activate button should be offered.
func (s Status) CanActivateTrial() bool {
	return s.Kind == StatusTrialAvailable
}
