package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"launchlist/entity"
	"launchlist/internal/sitemode"
	"launchlist/internal/waitlist"
	"launchlist/lib/sl"
)

type AuthService interface {
	UserByToken(token string) (*entity.User, error)
}

// SubmissionStore is the slice of the datastore the submission path needs.
type SubmissionStore interface {
	InsertSubmission(sub *entity.Submission) error
	IncrementRegistrations() error
	Submissions() ([]*entity.Submission, error)
}

// AccountSource lists provisioned accounts from the identity backend.
type AccountSource interface {
	Accounts() ([]*entity.Account, error)
}

// DeployService drives the deployment provider.
type DeployService interface {
	Trigger(ctx context.Context) (*entity.Deployment, error)
	Status(ctx context.Context) (*entity.Deployment, error)
}

// Alerter pushes a short operational message to the admin chat.
type Alerter interface {
	SendMessage(msg string)
}

// Core glues the domain services together and implements every handler
// interface of the HTTP layer.
type Core struct {
	counter  *waitlist.Counter
	modes    *sitemode.Controller
	store    SubmissionStore
	auth     AuthService
	accounts AccountSource
	deploy   DeployService
	alert    Alerter
	log      *slog.Logger
}

func New(counter *waitlist.Counter, modes *sitemode.Controller, store SubmissionStore, log *slog.Logger) *Core {
	if counter == nil || modes == nil || store == nil {
		panic("core services are nil")
	}
	return &Core{
		counter: counter,
		modes:   modes,
		store:   store,
		log:     log.With(sl.Module("core")),
	}
}

func (c *Core) SetAuthService(auth AuthService) {
	c.auth = auth
}

func (c *Core) SetAccountSource(accounts AccountSource) {
	c.accounts = accounts
}

func (c *Core) SetDeployService(deploy DeployService) {
	c.deploy = deploy
}

func (c *Core) SetAlerter(alert Alerter) {
	c.alert = alert
}

func (c *Core) AuthenticateByToken(token string) (*entity.User, error) {
	if c.auth == nil {
		return nil, fmt.Errorf("auth service not connected")
	}
	return c.auth.UserByToken(token)
}

// WaitlistRemaining never fails; see waitlist.Counter.Remaining.
func (c *Core) WaitlistRemaining() int {
	return c.counter.Remaining(time.Now())
}

// CreateSubmission stores a signup and fires the best-effort side effects:
// the registration counter increment and the admin alert. Neither failure
// reaches the caller; the signup already succeeded.
func (c *Core) CreateSubmission(sub *entity.Submission) error {
	sub.Id = uuid.NewString()
	sub.CreatedAt = time.Now().UTC()
	sub.Notified = false
	sub.AccountCreated = false

	if err := c.store.InsertSubmission(sub); err != nil {
		return err
	}

	if err := c.store.IncrementRegistrations(); err != nil {
		c.log.Warn("increment registrations", sl.Err(err))
	}
	if c.alert != nil {
		c.alert.SendMessage(fmt.Sprintf("New waitlist signup: %s", sub.Email))
	}
	return nil
}

func (c *Core) Submissions() ([]*entity.Submission, error) {
	return c.store.Submissions()
}

func (c *Core) SiteMode() (entity.Mode, error) {
	return c.modes.Mode()
}

func (c *Core) SetSiteMode(mode entity.Mode, actor string) error {
	return c.modes.SetMode(mode, actor)
}

func (c *Core) NotifyWaitlist(ctx context.Context) (*entity.BatchResult, error) {
	result, err := c.modes.NotifyAll(ctx)
	if err != nil {
		return nil, err
	}
	if c.alert != nil {
		c.alert.SendMessage(fmt.Sprintf(
			"Launch notification batch: %d sent, %d failed of %d",
			result.Success, result.Failed, result.Total))
	}
	return result, nil
}

func (c *Core) ProvisionAccounts(ctx context.Context) (*entity.BatchResult, error) {
	result, err := c.modes.ProvisionAll(ctx)
	if err != nil {
		return nil, err
	}
	if c.alert != nil {
		c.alert.SendMessage(fmt.Sprintf(
			"Account provisioning batch: %d created, %d failed of %d",
			result.Success, result.Failed, result.Total))
	}
	return result, nil
}

func (c *Core) Accounts() ([]*entity.Account, error) {
	if c.accounts == nil {
		return nil, fmt.Errorf("identity store not connected")
	}
	return c.accounts.Accounts()
}

func (c *Core) TriggerDeploy(ctx context.Context) (*entity.Deployment, error) {
	if c.deploy == nil {
		return nil, fmt.Errorf("deploy service not connected")
	}
	return c.deploy.Trigger(ctx)
}

func (c *Core) DeployStatus(ctx context.Context) (*entity.Deployment, error) {
	if c.deploy == nil {
		return nil, fmt.Errorf("deploy service not connected")
	}
	return c.deploy.Status(ctx)
}
