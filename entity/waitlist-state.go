package entity

import "time"

// WaitlistState is the persisted half of the public counter: the moment the
// countdown started and how many real signups happened since. StartDate is
// written once and never touched again; ActualRegistrations only grows.
// The displayed remaining count is recomputed from these on every request.
type WaitlistState struct {
	StartDate           time.Time `json:"start_date" bson:"start_date"`
	ActualRegistrations int64     `json:"actual_registrations" bson:"actual_registrations"`
}
