// Package sitemode manages the landing page mode flag and the launch
// batches that run when the site goes live: emailing everyone on the
// waitlist and provisioning their accounts with the identity provider.
//
// Both batches walk their candidates strictly one at a time. That is a
// deliberate throttle for the rate-limited email and identity APIs, not a
// missing optimization. A failed item is recorded and skipped, never
// aborting the rest of the run; the only request-level failure is the
// initial candidate query itself.
package sitemode

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"launchlist/entity"
	"launchlist/lib/sl"
)

// Store is the slice of the datastore the controller needs.
type Store interface {
	GetSiteMode() (*entity.SiteMode, error)
	SaveSiteMode(mode *entity.SiteMode) error
	SubmissionsUnnotified() ([]*entity.Submission, error)
	SubmissionsUnprovisioned() ([]*entity.Submission, error)
	MarkNotified(id string, at time.Time) error
	MarkAccountCreated(id string) error
}

// Sender delivers the launch announcement to one recipient.
type Sender interface {
	SendLaunch(to string) error
}

// Provisioner ensures an account exists in the identity backend. It returns
// entity.ErrAccountExists when the account was already there; that counts
// as success.
type Provisioner interface {
	Ensure(ctx context.Context, email string) error
}

type Controller struct {
	store       Store
	sender      Sender
	provisioner Provisioner
	log         *slog.Logger
}

func New(store Store, sender Sender, provisioner Provisioner, log *slog.Logger) *Controller {
	return &Controller{
		store:       store,
		sender:      sender,
		provisioner: provisioner,
		log:         log.With(sl.Module("sitemode")),
	}
}

// Mode returns the persisted mode, defaulting to the collection page when
// nothing was ever saved.
func (c *Controller) Mode() (entity.Mode, error) {
	mode, err := c.store.GetSiteMode()
	if err != nil {
		return "", err
	}
	if mode == nil {
		return entity.ModeCollection, nil
	}
	return mode.Mode, nil
}

// SetMode persists a new mode with the acting admin recorded. It does not
// trigger the launch batches; those are fired separately by the dashboard,
// and the flip succeeds regardless of their outcome. Last write wins.
func (c *Controller) SetMode(mode entity.Mode, actor string) error {
	if !mode.Valid() {
		return entity.ErrInvalidMode
	}
	record := &entity.SiteMode{
		Mode:      mode,
		UpdatedBy: actor,
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.store.SaveSiteMode(record); err != nil {
		return err
	}
	c.log.Info("site mode changed",
		slog.String("mode", string(mode)),
		slog.String("actor", actor),
	)
	return nil
}

// NotifyAll sends the launch email to every submission not yet notified.
// Each success flips the submission's notified flag; a failed send or a
// failed flag update leaves the flag untouched so a later run retries it.
func (c *Controller) NotifyAll(ctx context.Context) (*entity.BatchResult, error) {
	pending, err := c.store.SubmissionsUnnotified()
	if err != nil {
		return nil, err
	}

	result := &entity.BatchResult{Total: len(pending)}
	for _, sub := range pending {
		if err = c.sender.SendLaunch(sub.Email); err != nil {
			c.log.Warn("launch email failed", slog.String("email", sub.Email), sl.Err(err))
			result.AddFailure(sub.Email, err)
			continue
		}
		if err = c.store.MarkNotified(sub.Id, time.Now().UTC()); err != nil {
			c.log.Error("mark notified", slog.String("email", sub.Email), sl.Err(err))
			result.AddFailure(sub.Email, err)
			continue
		}
		result.AddSuccess()
	}

	c.log.Info("notification batch finished",
		slog.Int("total", result.Total),
		slog.Int("success", result.Success),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

// ProvisionAll ensures an identity account for every submission not yet
// provisioned. An "already exists" answer from the provisioner still marks
// the submission and counts as success.
func (c *Controller) ProvisionAll(ctx context.Context) (*entity.BatchResult, error) {
	pending, err := c.store.SubmissionsUnprovisioned()
	if err != nil {
		return nil, err
	}

	result := &entity.BatchResult{Total: len(pending)}
	for _, sub := range pending {
		err = c.provisioner.Ensure(ctx, sub.Email)
		if err != nil && !errors.Is(err, entity.ErrAccountExists) {
			c.log.Warn("provisioning failed", slog.String("email", sub.Email), sl.Err(err))
			result.AddFailure(sub.Email, err)
			continue
		}
		if err = c.store.MarkAccountCreated(sub.Id); err != nil {
			c.log.Error("mark account created", slog.String("email", sub.Email), sl.Err(err))
			result.AddFailure(sub.Email, err)
			continue
		}
		result.AddSuccess()
	}

	c.log.Info("provisioning batch finished",
		slog.Int("total", result.Total),
		slog.Int("success", result.Success),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}
