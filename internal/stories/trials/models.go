package trials

import "time"

// Duration is the fixed length of a trial window.
const Duration = 24 * time.Hour

// Trial is the single ledger row kept per user. Its existence means the trial
// has been consumed; it is never updated or deleted.
type Trial struct {
	UserID    int64
	Start     time.Time
	Expiry    time.Time
	Used      bool
	CreatedAt time.Time
}

// New builds a trial record starting at start.
func New(userID int64, start time.Time) Trial {
	start = start.UTC()
	return Trial{
		UserID: userID,
		Start:  start,
		Expiry: start.Add(Duration),
		Used:   true,
	}
}

// Remaining returns the time left until expiry. Zero or negative means expired.
func (t *Trial) Remaining(now time.Time) time.Duration {
	return t.Expiry.Sub(now)
}

// Expired reports whether the trial window is over at now.
func (t *Trial) Expired(now time.Time) bool {
	return t.Remaining(now) <= 0
}
