package issue

import (
	"context"
	"errors"
	"io"
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

// Request тело запроса выпуска ключа.
type Request struct {
	Description *string `json:"description"`
}

// Issuer выпускает API-ключ для сервиса.
type Issuer interface {
	Issue(ctx context.Context, serviceID int64, description *string) (rawKey string, key *models.APIKey, err error)
}

// New возвращает обработчик выпуска API-ключа.
// Сырой ключ попадает в ответ один-единственный раз.
func New(log *slog.Logger, issuer Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.apikey.issue.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		serviceID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid service id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid service id"))
			return
		}

		// Тело запроса опционально: ключ можно выпустить без описания.
		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		rawKey, key, err := issuer.Issue(r.Context(), serviceID, req.Description)
		if err != nil {
			log.Error("failed to issue api key", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to issue api key"))
			return
		}

		log.Info("issued api key", slog.Int64("service_id", serviceID), slog.Int64("key_id", key.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OKWithData(map[string]any{
			"id":         key.ID,
			"service_id": key.ServiceID,
			"api_key":    rawKey,
			"created_at": key.CreatedAt,
		}))
	}
}
