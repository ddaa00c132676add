// Package list реализует обработчик списка тарифов.
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

// Lister возвращает все тарифы.
type Lister interface {
	List(ctx context.Context) ([]*models.Subscription, error)
}

// New возвращает обработчик списка тарифов.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscription.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		subs, err := lister.List(r.Context())
		if err != nil {
			log.Error("failed to list subscriptions", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to list subscriptions"))
			return
		}

		render.JSON(w, r, response.OKWithData(subs))
	}
}
