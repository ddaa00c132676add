// Package read реализует обработчик чтения профиля пользователя
// по chat_id: учетная запись, подписки и число привязанных сервисов.
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

// Profile собирает пользовательские данные для ответа.
type Profile struct {
	User          *models.User               `json:"user"`
	Subscriptions []*models.UserSubscription `json:"subscriptions"`
	Services      []*models.UserService      `json:"services"`
}

// Getter читает пользователя, его подписки и связи с сервисами.
type Getter interface {
	GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error)
	ListUserSubscriptions(ctx context.Context, userID int64) ([]*models.UserSubscription, error)
	ListServiceLinks(ctx context.Context, userID int64) ([]*models.UserService, error)
}

// New возвращает обработчик чтения профиля пользователя.
func New(log *slog.Logger, getter Getter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.read.New"

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

		user, err := getter.GetUserByChatID(r.Context(), chatID)
		if err != nil {
			log.Error("failed to get user", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to get user"))
			return
		}

		subs, err := getter.ListUserSubscriptions(r.Context(), user.ID)
		if err != nil {
			log.Error("failed to list user subscriptions", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to get user"))
			return
		}

		links, err := getter.ListServiceLinks(r.Context(), user.ID)
		if err != nil {
			log.Error("failed to list service links", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to get user"))
			return
		}

		render.JSON(w, r, response.OKWithData(Profile{
			User:          user,
			Subscriptions: subs,
			Services:      links,
		}))
	}
}
