package waitlistcount

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"launchlist/lib/api/response"
	"launchlist/lib/sl"
)

type Core interface {
	WaitlistRemaining() int
}

type countData struct {
	Remaining int `json:"remaining"`
}

// Get serves the public counter. The core never errors here; a broken store
// degrades to the full initial capacity, so the landing page always gets a
// number.
func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.waitlistcount")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		remaining := handler.WaitlistRemaining()
		logger.Debug("waitlist count served", slog.Int("remaining", remaining))

		render.JSON(w, r, response.Ok(countData{Remaining: remaining}))
	}
}
