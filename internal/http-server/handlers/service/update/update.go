// Package update реализует обработчик обновления сервиса.
// Имя сервиса после создания не меняется, обновляются описание и владелец.
package update

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/telegram-suite/identity-hub/internal/http-server/response"
	"github.com/telegram-suite/identity-hub/internal/lib/sl"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Request тело запроса обновления сервиса. Отсутствующие поля
// не меняются, явный null очищает описание или отвязывает владельца.
type Request struct {
	Description models.Optional[string] `json:"description"`
	OwnerID     models.Optional[int64]  `json:"owner_id"`
}

// Updater применяет частичное обновление сервиса.
type Updater interface {
	UpdateService(ctx context.Context, id int64, patch models.ServicePatch) (*models.Service, error)
}

// New возвращает обработчик обновления сервиса.
func New(log *slog.Logger, updater Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.service.update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid service id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid service id"))
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		svc, err := updater.UpdateService(r.Context(), id, models.ServicePatch{
			Description: req.Description,
			OwnerID:     req.OwnerID,
		})
		if err != nil {
			log.Error("failed to update service", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to update service"))
			return
		}

		log.Info("updated service", slog.Int64("id", svc.ID))
		render.JSON(w, r, response.OKWithData(svc))
	}
}
