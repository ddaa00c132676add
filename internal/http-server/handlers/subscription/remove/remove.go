// Package remove реализует обработчик удаления тарифа.
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

// Remover удаляет тариф. Тариф с активными подписками не удаляется.
type Remover interface {
	Delete(ctx context.Context, id int64) error
}

// New возвращает обработчик удаления тарифа.
func New(log *slog.Logger, remover Remover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscription.remove.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid subscription id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid subscription id"))
			return
		}

		if err := remover.Delete(r.Context(), id); err != nil {
			log.Error("failed to delete subscription", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to delete subscription"))
			return
		}

		log.Info("deleted subscription", slog.Int64("id", id))
		render.JSON(w, r, response.OK())
	}
}
