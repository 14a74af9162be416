package sitemode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"launchlist/entity"
)

type fakeStore struct {
	mode          *entity.SiteMode
	saved         *entity.SiteMode
	unnotified    []*entity.Submission
	unprovisioned []*entity.Submission
	queryErr      error
	notified      map[string]bool
	created       map[string]bool
	markErr       map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notified: make(map[string]bool),
		created:  make(map[string]bool),
		markErr:  make(map[string]error),
	}
}

func (f *fakeStore) GetSiteMode() (*entity.SiteMode, error) { return f.mode, nil }

func (f *fakeStore) SaveSiteMode(mode *entity.SiteMode) error {
	f.saved = mode
	f.mode = mode
	return nil
}

func (f *fakeStore) SubmissionsUnnotified() ([]*entity.Submission, error) {
	return f.unnotified, f.queryErr
}

func (f *fakeStore) SubmissionsUnprovisioned() ([]*entity.Submission, error) {
	return f.unprovisioned, f.queryErr
}

func (f *fakeStore) MarkNotified(id string, _ time.Time) error {
	if err := f.markErr[id]; err != nil {
		return err
	}
	f.notified[id] = true
	return nil
}

func (f *fakeStore) MarkAccountCreated(id string) error {
	if err := f.markErr[id]; err != nil {
		return err
	}
	f.created[id] = true
	return nil
}

type fakeSender struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) SendLaunch(to string) error {
	if err := f.failFor[to]; err != nil {
		return err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeProvisioner struct {
	calls   []string
	failFor map[string]error
}

func (f *fakeProvisioner) Ensure(_ context.Context, email string) error {
	f.calls = append(f.calls, email)
	return f.failFor[email]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func submissions(emails ...string) []*entity.Submission {
	subs := make([]*entity.Submission, 0, len(emails))
	for i, email := range emails {
		subs = append(subs, &entity.Submission{Id: fmt.Sprintf("sub-%d", i+1), Email: email})
	}
	return subs
}

func TestModeDefaultsToCollection(t *testing.T) {
	ctl := New(newFakeStore(), &fakeSender{}, &fakeProvisioner{}, testLogger())

	mode, err := ctl.Mode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != entity.ModeCollection {
		t.Errorf("default mode = %q, want %q", mode, entity.ModeCollection)
	}
}

func TestModeReturnsStoredValue(t *testing.T) {
	store := newFakeStore()
	store.mode = &entity.SiteMode{Mode: entity.ModeLive}
	ctl := New(store, &fakeSender{}, &fakeProvisioner{}, testLogger())

	mode, err := ctl.Mode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != entity.ModeLive {
		t.Errorf("mode = %q, want %q", mode, entity.ModeLive)
	}
}

func TestSetModeRejectsUnknownValue(t *testing.T) {
	store := newFakeStore()
	store.mode = &entity.SiteMode{Mode: entity.ModeCollection}
	ctl := New(store, &fakeSender{}, &fakeProvisioner{}, testLogger())

	err := ctl.SetMode("not_a_real_mode", "admin")
	if err != entity.ErrInvalidMode {
		t.Fatalf("error = %v, want ErrInvalidMode", err)
	}
	if store.saved != nil {
		t.Error("invalid mode reached the store")
	}
	if store.mode.Mode != entity.ModeCollection {
		t.Error("persisted mode changed")
	}
}

func TestSetModeRecordsActor(t *testing.T) {
	store := newFakeStore()
	ctl := New(store, &fakeSender{}, &fakeProvisioner{}, testLogger())

	if err := ctl.SetMode(entity.ModeLive, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saved == nil {
		t.Fatal("mode was not saved")
	}
	if store.saved.Mode != entity.ModeLive || store.saved.UpdatedBy != "alice" {
		t.Errorf("saved = %+v, want mode mvp by alice", store.saved)
	}
	if store.saved.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

func TestNotifyAllPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.unnotified = submissions("one@example.com", "two@example.com", "three@example.com")
	sender := &fakeSender{failFor: map[string]error{
		"two@example.com": fmt.Errorf("mailbox unavailable"),
	}}
	ctl := New(store, sender, &fakeProvisioner{}, testLogger())

	result, err := ctl.NotifyAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 3 || result.Success != 2 || result.Failed != 1 {
		t.Errorf("result = %d/%d/%d, want total 3, success 2, failed 1",
			result.Total, result.Success, result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %d entries, want 1", len(result.Errors))
	}
	if result.Errors[0].Email != "two@example.com" {
		t.Errorf("error email = %q, want two@example.com", result.Errors[0].Email)
	}
	if !store.notified["sub-1"] || !store.notified["sub-3"] {
		t.Error("successful sends were not marked notified")
	}
	if store.notified["sub-2"] {
		t.Error("failed send was marked notified")
	}
}

func TestNotifyAllSequentialOrder(t *testing.T) {
	store := newFakeStore()
	store.unnotified = submissions("a@example.com", "b@example.com", "c@example.com")
	sender := &fakeSender{}
	ctl := New(store, sender, &fakeProvisioner{}, testLogger())

	if _, err := ctl.NotifyAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent %d emails, want %d", len(sender.sent), len(want))
	}
	for i, email := range want {
		if sender.sent[i] != email {
			t.Errorf("send %d = %q, want %q", i, sender.sent[i], email)
		}
	}
}

func TestNotifyAllMarkFailureCountsAsFailed(t *testing.T) {
	store := newFakeStore()
	store.unnotified = submissions("one@example.com")
	store.markErr["sub-1"] = fmt.Errorf("write failed")
	ctl := New(store, &fakeSender{}, &fakeProvisioner{}, testLogger())

	result, err := ctl.NotifyAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Failed != 1 || result.Success != 0 {
		t.Errorf("result = %+v, want the unmarked item counted as failed", result)
	}
}

func TestNotifyAllQueryFailure(t *testing.T) {
	store := newFakeStore()
	store.queryErr = fmt.Errorf("connection refused")
	ctl := New(store, &fakeSender{}, &fakeProvisioner{}, testLogger())

	if _, err := ctl.NotifyAll(context.Background()); err == nil {
		t.Fatal("expected error when the candidate query fails")
	}
}

func TestProvisionAllIdempotent(t *testing.T) {
	store := newFakeStore()
	store.unprovisioned = submissions("one@example.com", "two@example.com")
	prov := &fakeProvisioner{failFor: map[string]error{
		"two@example.com": entity.ErrAccountExists,
	}}
	ctl := New(store, &fakeSender{}, prov, testLogger())

	result, err := ctl.ProvisionAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want both counted as success", result)
	}
	if !store.created["sub-2"] {
		t.Error("already-existing account was not marked created")
	}
}

func TestProvisionAllContinuesPastFailure(t *testing.T) {
	store := newFakeStore()
	store.unprovisioned = submissions("one@example.com", "two@example.com", "three@example.com")
	prov := &fakeProvisioner{failFor: map[string]error{
		"one@example.com": fmt.Errorf("rate limited"),
	}}
	ctl := New(store, &fakeSender{}, prov, testLogger())

	result, err := ctl.ProvisionAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 3 || result.Success != 2 || result.Failed != 1 {
		t.Errorf("result = %d/%d/%d, want total 3, success 2, failed 1",
			result.Total, result.Success, result.Failed)
	}
	if len(prov.calls) != 3 {
		t.Errorf("provisioner called %d times, want 3", len(prov.calls))
	}
	if store.created["sub-1"] {
		t.Error("failed item was marked created")
	}
}
