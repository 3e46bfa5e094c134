package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histobot/internal/stories/trials"
)

const trialSection = "topic_1"

var (
	t0       = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sections = []string{"topic_1", "topic_2", "topic_9", "unknown", ""}
)

func TestEvaluateAllowListedAlwaysFull(t *testing.T) {
	allow := NewAllowList([]int64{1035549880, 2028669813})
	active := trials.New(1035549880, t0)
	expired := trials.New(1035549880, t0.Add(-72*time.Hour))

	for _, trial := range []*trials.Trial{nil, &active, &expired} {
		for _, section := range sections {
			for _, now := range []time.Time{t0, t0.Add(24 * time.Hour), t0.Add(-24 * time.Hour)} {
				d := Evaluate(1035549880, section, trialSection, now, allow, trial)
				assert.Equal(t, TierFull, d.Tier, "section %q at %s", section, now)
			}
		}
	}
}

func TestEvaluateNoRecordIsNone(t *testing.T) {
	allow := NewAllowList([]int64{1})
	for _, section := range sections {
		d := Evaluate(2, section, trialSection, t0, allow, nil)
		assert.Equal(t, TierNone, d.Tier, section)
		assert.Equal(t, ReasonNoTrial, d.Reason, section)
	}
}

func TestEvaluateTrialWindow(t *testing.T) {
	allow := NewAllowList(nil)
	trial := trials.New(5, t0)

	tests := []struct {
		name    string
		section string
		now     time.Time
		tier    Tier
		reason  Reason
	}{
		{name: "just activated", section: trialSection, now: t0, tier: TierTrial},
		{name: "one minute left", section: trialSection, now: t0.Add(23*time.Hour + 59*time.Minute), tier: TierTrial},
		{name: "exact expiry", section: trialSection, now: t0.Add(24 * time.Hour), tier: TierNone, reason: ReasonExpired},
		{name: "after expiry", section: trialSection, now: t0.Add(30 * time.Hour), tier: TierNone, reason: ReasonExpired},
		{name: "other section while active", section: "topic_2", now: t0.Add(time.Hour), tier: TierNone, reason: ReasonSectionLocked},
		{name: "other section after expiry", section: "topic_2", now: t0.Add(25 * time.Hour), tier: TierNone, reason: ReasonExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(5, tt.section, trialSection, tt.now, allow, &trial)
			assert.Equal(t, tt.tier, d.Tier)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestStatusOf(t *testing.T) {
	allow := NewAllowList([]int64{1})
	trial := trials.New(2, t0)

	assert.Equal(t, StatusFull, StatusOf(1, t0, allow, nil).Kind)
	assert.Equal(t, StatusTrialAvailable, StatusOf(2, t0, allow, nil).Kind)
	assert.True(t, StatusOf(2, t0, allow, nil).CanActivateTrial())

	st := StatusOf(2, t0.Add(time.Minute), allow, &trial)
	assert.Equal(t, StatusTrialActive, st.Kind)
	assert.Equal(t, 23*time.Hour+59*time.Minute, st.Remaining)
	assert.False(t, st.CanActivateTrial())

	st = StatusOf(2, t0.Add(24*time.Hour), allow, &trial)
	assert.Equal(t, StatusTrialExpired, st.Kind)
	assert.False(t, st.CanActivateTrial())
}

func TestAllowList(t *testing.T) {
	allow := NewAllowList([]int64{3, 1, 3, 2})
	assert.Equal(t, 3, allow.Len())
	assert.True(t, allow.Contains(2))
	assert.False(t, allow.Contains(4))
	assert.False(t, NewAllowList(nil).Contains(0))
}

type fakeTrials struct {
	trial *trials.Trial
	err   error
	calls int
}

func (f *fakeTrials) Get(context.Context, int64) (*trials.Trial, error) {
	f.calls++
	return f.trial, f.err
}

func TestServiceCheckReadsLedgerEveryTime(t *testing.T) {
	ctx := context.Background()
	trial := trials.New(9, t0)
	ft := &fakeTrials{trial: &trial}
	now := t0.Add(time.Hour)
	svc := NewService(ft, NewAllowList(nil), trialSection, func() time.Time { return now })

	d, err := svc.Check(ctx, 9, trialSection)
	require.NoError(t, err)
	assert.Equal(t, TierTrial, d.Tier)

	now = t0.Add(24 * time.Hour)
	d, err = svc.Check(ctx, 9, trialSection)
	require.NoError(t, err)
	assert.Equal(t, TierNone, d.Tier)
	assert.Equal(t, ReasonExpired, d.Reason)
	assert.Equal(t, 2, ft.calls)
}

func TestServiceFullAccessSkipsLedger(t *testing.T) {
	ft := &fakeTrials{err: errors.New("unreachable")}
	svc := NewService(ft, NewAllowList([]int64{1}), trialSection, time.Now)

	d, err := svc.Check(context.Background(), 1, "topic_7")
	require.NoError(t, err)
	assert.Equal(t, TierFull, d.Tier)

	st, err := svc.Status(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusFull, st.Kind)
	assert.Zero(t, ft.calls)
}

func TestServiceCheckError(t *testing.T) {
	ft := &fakeTrials{err: errors.New("boom")}
	svc := NewService(ft, NewAllowList(nil), trialSection, time.Now)

	_, err := svc.Check(context.Background(), 2, trialSection)
	assert.Error(t, err)
	_, err = svc.Status(context.Background(), 2)
	assert.Error(t, err)
}
