package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"launchlist/entity"
	"launchlist/lib/api/cont"
	"launchlist/lib/api/response"
	"launchlist/lib/sl"
)

type Core interface {
	SiteMode() (entity.Mode, error)
	SetSiteMode(mode entity.Mode, actor string) error
}

type modeData struct {
	Mode entity.Mode `json:"mode"`
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.settings")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		mode, err := handler.SiteMode()
		if err != nil {
			logger.Error("read site mode", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Could not read settings"))
			return
		}

		render.JSON(w, r, response.Ok(modeData{Mode: mode}))
	}
}

func Set(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.settings")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.ModeRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		actor := cont.GetUser(r.Context()).Username
		err := handler.SetSiteMode(req.Mode, actor)
		if errors.Is(err, entity.ErrInvalidMode) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid site mode"))
			return
		}
		if err != nil {
			logger.Error("set site mode", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Could not save settings"))
			return
		}
		logger.Info("site mode updated",
			slog.String("mode", string(req.Mode)),
			slog.String("actor", actor),
		)

		render.JSON(w, r, response.Ok(modeData{Mode: req.Mode}))
	}
}
