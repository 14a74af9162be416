// Package waitlist computes the publicly displayed "remaining slots" number.
// The count blends a scripted decay (a fixed capacity shrinking by a daily
// decrement, smoothly within the day) with the real registration count.
// Only the start date and the registration counter are persisted; the
// displayed value is recomputed on every call.
package waitlist

import (
	"log/slog"
	"time"

	"launchlist/entity"
	"launchlist/internal/config"
	"launchlist/lib/sl"
)

const minutesPerDay = 24 * 60

// Store is the slice of the settings store the counter needs.
type Store interface {
	GetWaitlistState() (*entity.WaitlistState, error)
	InitWaitlistState(state *entity.WaitlistState) error
}

type Counter struct {
	store          Store
	capacity       int
	dailyDecrement int
	log            *slog.Logger
}

func New(store Store, conf *config.Config, log *slog.Logger) *Counter {
	return &Counter{
		store:          store,
		capacity:       conf.Waitlist.InitialCapacity,
		dailyDecrement: conf.Waitlist.DailyDecrement,
		log:            log.With(sl.Module("waitlist.counter")),
	}
}

// Remaining returns the number to display on the landing page. It never
// fails: any store error degrades to the full initial capacity, because the
// public page must not break over a cosmetic counter.
//
// The state record is created lazily on the first call; its start date is
// never updated afterwards.
func (c *Counter) Remaining(now time.Time) int {
	state, err := c.store.GetWaitlistState()
	if err != nil {
		c.log.Error("read waitlist state", sl.Err(err))
		return c.capacity
	}
	if state == nil {
		state = &entity.WaitlistState{StartDate: now.UTC()}
		if err = c.store.InitWaitlistState(state); err != nil {
			c.log.Error("init waitlist state", sl.Err(err))
		}
	}
	return remaining(now, state.StartDate, state.ActualRegistrations, c.capacity, c.dailyDecrement)
}

// remaining is the pure decay function.
//
// Full elapsed days each subtract dailyDecrement; the partial day adds a
// prorated share so the number drifts down through the day instead of
// jumping at the day boundary. Real registrations subtract directly and are
// not folded into the simulated decay. Both the simulated value and the
// final result are floored at zero.
func remaining(now, start time.Time, registrations int64, capacity, dailyDecrement int) int {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	days := int(elapsed / (24 * time.Hour))
	partialMinutes := int((elapsed % (24 * time.Hour)) / time.Minute)

	decrease := days*dailyDecrement + dailyDecrement*partialMinutes/minutesPerDay
	simulated := capacity - decrease
	if simulated < 0 {
		simulated = 0
	}
	left := simulated - int(registrations)
	if left < 0 {
		left = 0
	}
	return left
}
