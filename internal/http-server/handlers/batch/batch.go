package batch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"launchlist/entity"
	"launchlist/lib/api/response"
	"launchlist/lib/sl"
)

type Core interface {
	NotifyWaitlist(ctx context.Context) (*entity.BatchResult, error)
	ProvisionAccounts(ctx context.Context) (*entity.BatchResult, error)
}

// Notify runs the launch email batch. Per-item failures come back inside
// the result payload; only a failed candidate query is a 500.
func Notify(log *slog.Logger, handler Core) http.HandlerFunc {
	return run(log, "notify-waitlist", func(ctx context.Context) (*entity.BatchResult, error) {
		return handler.NotifyWaitlist(ctx)
	})
}

// CreateAccounts runs the account provisioning batch with the same
// partial-failure contract as Notify.
func CreateAccounts(log *slog.Logger, handler Core) http.HandlerFunc {
	return run(log, "create-accounts", func(ctx context.Context) (*entity.BatchResult, error) {
		return handler.ProvisionAccounts(ctx)
	})
}

func run(log *slog.Logger, name string, batch func(ctx context.Context) (*entity.BatchResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.batch")

		logger := log.With(
			mod,
			slog.String("batch", name),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		result, err := batch(r.Context())
		if err != nil {
			logger.Error("batch failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Could not load batch candidates"))
			return
		}
		logger.Info("batch completed",
			slog.Int("total", result.Total),
			slog.Int("success", result.Success),
			slog.Int("failed", result.Failed),
		)

		render.JSON(w, r, response.Ok(result))
	}
}
