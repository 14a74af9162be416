package deployment

import (
	"context"
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
	TriggerDeploy(ctx context.Context) (*entity.Deployment, error)
	DeployStatus(ctx context.Context) (*entity.Deployment, error)
}

// Trigger starts a site rebuild through the deployment provider.
func Trigger(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.deployment")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		dep, err := handler.TriggerDeploy(r.Context())
		if err != nil {
			logger.Error("trigger deploy", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(fmt.Sprintf("Deploy failed: %v", err)))
			return
		}
		logger.Info("deploy triggered", slog.String("id", dep.Id))

		render.JSON(w, r, response.Ok(dep))
	}
}

// Status reports the most recent deploy.
func Status(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.deployment")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		dep, err := handler.DeployStatus(r.Context())
		if err != nil {
			logger.Error("deploy status", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(fmt.Sprintf("Status failed: %v", err)))
			return
		}

		render.JSON(w, r, response.Ok(dep))
	}
}
