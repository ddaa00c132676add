package register

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

// Request тело запроса регистрации администратора.
type Request struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registrar создает учетную запись администратора.
type Registrar interface {
	Register(ctx context.Context, username, email, rawPassword string) (*models.Admin, error)
}

// New возвращает обработчик регистрации администратора.
func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.register.New"

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

		admin, err := registrar.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			log.Error("failed to register admin", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error("failed to register admin"))
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OKWithData(map[string]any{
			"id":    admin.ID,
			"email": admin.Email,
			"role":  admin.Role,
		}))
	}
}
