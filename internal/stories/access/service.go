package access

import (
	"context"
	"time"
)

// Service evaluates access against the live ledger. Nothing is cached: every
// call reads the user's record again.
type Service struct {
	trials       trialService
	allow        AllowList
	trialSection string
	now          func() time.Time
}

func NewService(ts trialService, allow AllowList, trialSection string, now func() time.Time) *Service {
	return &Service{
		trials:       ts,
		allow:        allow,
		trialSection: trialSection,
		now:          now,
	}
}

// Check evaluates userID's access to section.
func (s *Service) Check(ctx context.Context, userID int64, section string) (Decision, error) {
	if s.allow.Contains(userID) {
		return Decision{Tier: TierFull}, nil
	}

	trial, err := s.trials.Get(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	return Evaluate(userID, section, s.trialSection, s.now(), s.allow, trial), nil
}

// Status returns the standing shown on the main menu.
func (s *Service) Status(ctx context.Context, userID int64) (Status, error) {
	if s.allow.Contains(userID) {
		return Status{Kind: StatusFull}, nil
	}

	trial, err := s.trials.Get(ctx, userID)
	if err != nil {
		return Status{}, err
	}
	return StatusOf(userID, s.now(), s.allow, trial), nil
}

// IsFullAccess reports whether userID is allow-listed.
func (s *Service) IsFullAccess(userID int64) bool {
	return s.allow.Contains(userID)
}

// TrialSection returns the key of the section a trial unlocks.
func (s *Service) TrialSection() string {
	return s.trialSection
}
