// Package read реализует обработчик чтения тарифа по ID.
package read

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

// Getter читает тариф, сначала из кеша, затем из хранилища.
type Getter interface {
	Get(ctx context.Context, id int64) (*models.Subscription, error)
}

// New возвращает обработчик чтения тарифа.
func New(log *slog.Logger, getter Getter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscription.read.New"

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

		sub, err := getter.Get(r.Context(), id)
		if err != nil {
			log.Error("failed to get subscription", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to get subscription"))
			return
		}

		render.JSON(w, r, response.OKWithData(sub))
	}
}
