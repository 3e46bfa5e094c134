package access

import (
	"context"

	"histobot/internal/stories/trials"
)

type trialService interface {
	Get(ctx context.Context, userID int64) (*trials.Trial, error)
}
