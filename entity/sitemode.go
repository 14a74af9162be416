package entity

import (
	"net/http"
	"time"
)

// Mode selects which landing experience the site serves.
// ModeCollection is the "faked door" email collection page, ModeLive the
// real product page. The wire values match what the frontend persists.
type Mode string

const (
	ModeCollection Mode = "faked_door"
	ModeLive       Mode = "mvp"
)

func (m Mode) Valid() bool {
	return m == ModeCollection || m == ModeLive
}

// SiteMode is the persisted mode record. UpdatedBy holds the username of
// the admin who last flipped it.
type SiteMode struct {
	Mode      Mode      `json:"mode" bson:"mode"`
	UpdatedBy string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ModeRequest is the admin settings update payload.
type ModeRequest struct {
	Mode Mode `json:"mode"`
}

func (m *ModeRequest) Bind(_ *http.Request) error {
	if !m.Mode.Valid() {
		return ErrInvalidMode
	}
	return nil
}
