// Package health реализует проверку живости сервера и его хранилища.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/telegram-suite/identity-hub/internal/http-server/response"
	"github.com/telegram-suite/identity-hub/internal/lib/sl"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// New возвращает обработчик проверки живости.
func New(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		if err := pinger.PingContext(r.Context()); err != nil {
			log.Error("storage is unreachable", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("storage is unreachable"))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
