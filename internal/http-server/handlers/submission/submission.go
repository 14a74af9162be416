package submission

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"launchlist/entity"
	"launchlist/lib/api/response"
	"launchlist/lib/sl"
)

type Core interface {
	CreateSubmission(sub *entity.Submission) error
	Submissions() ([]*entity.Submission, error)
}

// Create handles the public signup form. 201 on success, 400 on a malformed
// request, 409 when the email is already on the list.
func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.submission")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var sub entity.Submission
		if err := render.Bind(r, &sub); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}
		logger = logger.With(slog.String("email", sub.Email))

		err := handler.CreateSubmission(&sub)
		if errors.Is(err, entity.ErrDuplicateEmail) {
			logger.Debug("duplicate email")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("This email is already on the waitlist"))
			return
		}
		if err != nil {
			logger.Error("create submission", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Could not save submission"))
			return
		}
		logger.Info("submission created")

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(&sub))
	}
}

// List serves the admin dashboard's submissions table.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.submission")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		submissions, err := handler.Submissions()
		if err != nil {
			logger.Error("list submissions", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Could not load submissions"))
			return
		}
		logger.Debug("submissions listed", slog.Int("count", len(submissions)))

		render.JSON(w, r, response.Ok(submissions))
	}
}
