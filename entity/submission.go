package entity

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"launchlist/lib/validate"

	"github.com/biter777/countries"
)

// Submission is a single waitlist signup. Email is unique across the
// collection (lowercased before insert); Notified and AccountCreated are
// flipped one way only, by the launch batches.
type Submission struct {
	Id             string     `json:"id" bson:"id"`
	Email          string     `json:"email" bson:"email" validate:"required,email"`
	Name           string     `json:"name,omitempty" bson:"name" validate:"omitempty,max=120"`
	Country        string     `json:"country,omitempty" bson:"country"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	Notified       bool       `json:"notified" bson:"notified"`
	NotifiedAt     *time.Time `json:"notified_at,omitempty" bson:"notified_at,omitempty"`
	AccountCreated bool       `json:"account_created" bson:"account_created"`
}

// Bind normalizes and validates an incoming signup request.
func (s *Submission) Bind(_ *http.Request) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Name = strings.TrimSpace(s.Name)
	if err := validate.Struct(s); err != nil {
		return err
	}
	if s.Country != "" {
		c := countries.ByName(s.Country)
		if c == countries.Unknown {
			return fmt.Errorf("country not recognized: %s", s.Country)
		}
		s.Country = c.Alpha2()
	}
	return nil
}
