package remove

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
)

// Remover удаляет сервис вместе с его ключами.
type Remover interface {
	DeleteService(ctx context.Context, id int64) error
}

// New возвращает обработчик удаления сервиса.
func New(log *slog.Logger, remover Remover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.service.remove.New"

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

		if err := remover.DeleteService(r.Context(), id); err != nil {
			log.Error("failed to delete service", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to delete service"))
			return
		}

		log.Info("deleted service", slog.Int64("id", id))
		render.JSON(w, r, response.OK())
	}
}
