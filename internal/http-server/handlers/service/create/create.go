package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/telegram-suite/identity-hub/internal/http-server/response"
	"github.com/telegram-suite/identity-hub/internal/lib/sl"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Request тело запроса создания сервиса.
type Request struct {
	Name        string  `json:"name" validate:"required,max=128"`
	Description *string `json:"description"`
	OwnerID     *int64  `json:"owner_id"`
}

// Creater сохраняет новый сервис.
type Creater interface {
	CreateService(ctx context.Context, svc models.Service) (*models.Service, error)
}

// New возвращает обработчик создания сервиса.
func New(log *slog.Logger, creater Creater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.service.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		svc, err := creater.CreateService(r.Context(), models.Service{
			Name:        req.Name,
			Description: req.Description,
			OwnerID:     req.OwnerID,
		})
		if err != nil {
			log.Error("failed to create service", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to create service"))
			return
		}

		log.Info("created service", slog.Int64("id", svc.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OKWithData(svc))
	}
}
