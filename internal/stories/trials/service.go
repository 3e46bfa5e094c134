package trials

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Service provides business logic for the trial ledger
type Service struct {
	storage Storage
	now     func() time.Time
}

// NewService creates a new trial service
func NewService(storage Storage, now func() time.Time) *Service {
	return &Service{
		storage: storage,
		now:     now,
	}
}

// Get returns the user's trial record or nil when the user never activated one.
func (s *Service) Get(ctx context.Context, userID int64) (*Trial, error) {
	trial, err := s.storage.GetTrial(ctx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "get trial for user %d", userID)
	}
	return trial, nil
}

// Activate starts the one-time trial for the user. It returns false when the
// user already has a record, including when a concurrent activation won the insert.
func (s *Service) Activate(ctx context.Context, userID int64) (bool, error) {
	existing, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	return s.insert(ctx, New(userID, s.now()))
}

// Import records a historical trial that started at start. Existing records are kept as is.
func (s *Service) Import(ctx context.Context, userID int64, start time.Time) (bool, error) {
	if userID == 0 {
		return false, errors.New("user id is required")
	}
	if start.IsZero() {
		return false, errors.New("trial start is required")
	}
	return s.insert(ctx, New(userID, start))
}

func (s *Service) insert(ctx context.Context, trial Trial) (bool, error) {
	created, err := s.storage.CreateTrialIfAbsent(ctx, trial)
	if err != nil {
		return false, errors.Wrapf(err, "create trial for user %d", trial.UserID)
	}
	return created, nil
}
