// Package list реализует обработчик списка платежей пользователя.
package list

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

// Lister возвращает платежи пользователя по chat_id.
type Lister interface {
	ListByChatID(ctx context.Context, chatID int64) ([]*models.Payment, error)
}

// New возвращает обработчик списка платежей.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
		if err != nil {
			log.Error("invalid chat id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid chat id"))
			return
		}

		payments, err := lister.ListByChatID(r.Context(), chatID)
		if err != nil {
			log.Error("failed to list payments", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to list payments"))
			return
		}

		render.JSON(w, r, response.OKWithData(payments))
	}
}
