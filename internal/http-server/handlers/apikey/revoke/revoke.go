package revoke

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

// Revoker отзывает API-ключ.
type Revoker interface {
	Revoke(ctx context.Context, keyID int64) error
}

// New возвращает обработчик отзыва API-ключа.
func New(log *slog.Logger, revoker Revoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.apikey.revoke.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid key id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid key id"))
			return
		}

		if err := revoker.Revoke(r.Context(), id); err != nil {
			log.Error("failed to revoke api key", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to revoke api key"))
			return
		}

		log.Info("revoked api key", slog.Int64("id", id))
		render.JSON(w, r, response.OK())
	}
}
