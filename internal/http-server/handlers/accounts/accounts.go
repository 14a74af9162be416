package accounts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"launchlist/entity"
	"launchlist/lib/api/response"
	"launchlist/lib/sl"
)

type Core interface {
	Accounts() ([]*entity.Account, error)
}

// List serves the admin dashboard's view of provisioned identity accounts.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.accounts")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		list, err := handler.Accounts()
		if err != nil {
			logger.Error("list accounts", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Could not load accounts"))
			return
		}
		logger.Debug("accounts listed", slog.Int("count", len(list)))

		render.JSON(w, r, response.Ok(list))
	}
}
