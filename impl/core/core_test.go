package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"launchlist/entity"
	"launchlist/internal/config"
	"launchlist/internal/sitemode"
	"launchlist/internal/waitlist"
)

type fakeStore struct {
	insertErr     error
	incrementErr  error
	inserted      []*entity.Submission
	incrementCnt  int
	waitlistState *entity.WaitlistState
	siteMode      *entity.SiteMode
}

func (f *fakeStore) InsertSubmission(sub *entity.Submission) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, sub)
	return nil
}

func (f *fakeStore) IncrementRegistrations() error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incrementCnt++
	return nil
}

func (f *fakeStore) Submissions() ([]*entity.Submission, error) { return f.inserted, nil }

func (f *fakeStore) GetWaitlistState() (*entity.WaitlistState, error) { return f.waitlistState, nil }

func (f *fakeStore) InitWaitlistState(state *entity.WaitlistState) error {
	saved := *state
	f.waitlistState = &saved
	return nil
}

func (f *fakeStore) GetSiteMode() (*entity.SiteMode, error) { return f.siteMode, nil }

func (f *fakeStore) SaveSiteMode(mode *entity.SiteMode) error {
	f.siteMode = mode
	return nil
}

func (f *fakeStore) SubmissionsUnnotified() ([]*entity.Submission, error)    { return nil, nil }
func (f *fakeStore) SubmissionsUnprovisioned() ([]*entity.Submission, error) { return nil, nil }
func (f *fakeStore) MarkNotified(string, time.Time) error                    { return nil }
func (f *fakeStore) MarkAccountCreated(string) error                         { return nil }

type nullSender struct{}

func (nullSender) SendLaunch(string) error { return nil }

type nullProvisioner struct{}

func (nullProvisioner) Ensure(context.Context, string) error { return nil }

func newTestCore(store *fakeStore) *Core {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	conf := &config.Config{Waitlist: config.WaitlistConfig{InitialCapacity: 300, DailyDecrement: 50}}
	counter := waitlist.New(store, conf, log)
	modes := sitemode.New(store, nullSender{}, nullProvisioner{}, log)
	return New(counter, modes, store, log)
}

func TestCreateSubmissionIncrementsOnce(t *testing.T) {
	store := &fakeStore{}
	c := newTestCore(store)

	sub := &entity.Submission{Email: "user@example.com"}
	if err := c.CreateSubmission(sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.incrementCnt != 1 {
		t.Errorf("increment called %d times, want 1", store.incrementCnt)
	}
	if sub.Id == "" {
		t.Error("submission id not assigned")
	}
	if sub.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreateSubmissionDuplicateDoesNotIncrement(t *testing.T) {
	store := &fakeStore{insertErr: entity.ErrDuplicateEmail}
	c := newTestCore(store)

	err := c.CreateSubmission(&entity.Submission{Email: "user@example.com"})
	if err != entity.ErrDuplicateEmail {
		t.Fatalf("error = %v, want ErrDuplicateEmail", err)
	}
	if store.incrementCnt != 0 {
		t.Error("counter incremented for a rejected submission")
	}
}

func TestCreateSubmissionIncrementFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{incrementErr: fmt.Errorf("write denied")}
	c := newTestCore(store)

	if err := c.CreateSubmission(&entity.Submission{Email: "user@example.com"}); err != nil {
		t.Fatalf("submission failed because of the counter: %v", err)
	}
	if len(store.inserted) != 1 {
		t.Error("submission was not stored")
	}
}
