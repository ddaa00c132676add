// Package create реализует обработчик создания тарифа.
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

// Request тело запроса создания тарифа.
type Request struct {
	Name           string  `json:"name" validate:"required,max=128"`
	Description    *string `json:"description"`
	TermDays       int     `json:"term_days" validate:"gte=0"`
	Price          float64 `json:"price" validate:"gte=0"`
	SalePercent    int     `json:"sale_percent" validate:"gte=0,lte=100"`
	TrialAvailable bool    `json:"trial_available"`
}

// Creater сохраняет новый тариф.
type Creater interface {
	Create(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
}

// New возвращает обработчик создания тарифа.
func New(log *slog.Logger, creater Creater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscription.create.New"

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

		sub, err := creater.Create(r.Context(), models.Subscription{
			Name:           req.Name,
			Description:    req.Description,
			TermDays:       req.TermDays,
			Price:          req.Price,
			SalePercent:    req.SalePercent,
			TrialAvailable: req.TrialAvailable,
		})
		if err != nil {
			log.Error("failed to create subscription", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to create subscription"))
			return
		}

		log.Info("created subscription", slog.Int64("id", sub.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OKWithData(sub))
	}
}
