package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/telegram-suite/identity-hub/internal/http-server/response"
	"github.com/telegram-suite/identity-hub/internal/lib/sl"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Lister возвращает все сервисы.
type Lister interface {
	ListServices(ctx context.Context) ([]*models.Service, error)
}

// New возвращает обработчик списка сервисов.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.service.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		services, err := lister.ListServices(r.Context())
		if err != nil {
			log.Error("failed to list services", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to list services"))
			return
		}

		render.JSON(w, r, response.OKWithData(services))
	}
}
