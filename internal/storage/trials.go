package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"histobot/internal/stories/trials"
)

const trialUsersTable = "trial_users"

var trialRowFields = fields(trialRow{})

type trialRow struct {
	UserID      int64     `db:"user_id"`
	TrialStart  time.Time `db:"trial_start"`
	TrialExpiry time.Time `db:"trial_expiry"`
	TrialUsed   bool      `db:"trial_used"`
	CreatedAt   time.Time `db:"created_at"`
}

func (t trialRow) ToModel() *trials.Trial {
	return &trials.Trial{
		UserID:    t.UserID,
		Start:     t.TrialStart.UTC(),
		Expiry:    t.TrialExpiry.UTC(),
		Used:      t.TrialUsed,
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func (s *storageImpl) GetTrial(ctx context.Context, userID int64) (*trials.Trial, error) {
	q, args, err := s.stmpBuilder().
		Select(trialRowFields).
		From(trialUsersTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	row := s.db.QueryRowContext(ctx, q, args...)

	var t trialRow
	err = row.Scan(&t.UserID, &t.TrialStart, &t.TrialExpiry, &t.TrialUsed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return t.ToModel(), nil
}

func (s *storageImpl) CreateTrialIfAbsent(ctx context.Context, trial trials.Trial) (bool, error) {
	params := map[string]interface{}{
		"user_id":      trial.UserID,
		"trial_start":  trial.Start.UTC(),
		"trial_expiry": trial.Expiry.UTC(),
		"trial_used":   trial.Used,
		"created_at":   s.now(),
	}

	q, args, err := s.stmpBuilder().
		Insert(trialUsersTable).
		SetMap(params).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected: %w", err)
	}

	return affected == 1, nil
}
