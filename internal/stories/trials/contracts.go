package trials

import "context"

type (
	Storage interface {
		GetTrial(ctx context.Context, userID int64) (*Trial, error)
		// CreateTrialIfAbsent inserts the row unless one exists for the user and
		// reports whether this call's insert took effect.
		CreateTrialIfAbsent(ctx context.Context, trial Trial) (bool, error)
	}
)
