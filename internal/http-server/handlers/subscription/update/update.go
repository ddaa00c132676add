// Package update реализует обработчик частичного обновления тарифа.
package update

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/telegram-suite/identity-hub/internal/http-server/response"
	"github.com/telegram-suite/identity-hub/internal/lib/sl"
	"github.com/telegram-suite/identity-hub/internal/lib/validation"
	"github.com/telegram-suite/identity-hub/internal/models"
)

// Request тело запроса обновления тарифа. Отсутствующие поля
// не меняются, явный null очищает только nullable-описание.
type Request struct {
	Name           models.Optional[string]  `json:"name" validate:"omitempty,max=128"`
	Description    models.Optional[string]  `json:"description"`
	TermDays       models.Optional[int]     `json:"term_days" validate:"omitempty,gte=0"`
	Price          models.Optional[float64] `json:"price" validate:"omitempty,gte=0"`
	SalePercent    models.Optional[int]     `json:"sale_percent" validate:"omitempty,gte=0,lte=100"`
	TrialAvailable models.Optional[bool]    `json:"trial_available"`
}

// Updater применяет частичное обновление тарифа.
type Updater interface {
	Update(ctx context.Context, id int64, patch models.SubscriptionPatch) (*models.Subscription, error)
}

// New возвращает обработчик обновления тарифа.
func New(log *slog.Logger, updater Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscription.update.New"

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

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validation.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		sub, err := updater.Update(r.Context(), id, models.SubscriptionPatch{
			Name:           req.Name,
			Description:    req.Description,
			TermDays:       req.TermDays,
			Price:          req.Price,
			SalePercent:    req.SalePercent,
			TrialAvailable: req.TrialAvailable,
		})
		if err != nil {
			log.Error("failed to update subscription", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to update subscription"))
			return
		}

		log.Info("updated subscription", slog.Int64("id", sub.ID))
		render.JSON(w, r, response.OKWithData(sub))
	}
}
