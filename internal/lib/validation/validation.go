// Package validation собирает валидатор запросов и событий
// с поддержкой опциональных полей частичного обновления.
package validation

import (
	"reflect"

	"github.com/go-playground/validator"

	"github.com/telegram-suite/identity-hub/internal/models"
)

// New возвращает валидатор, который видит Optional-поле как его
// внутреннее значение: отсутствующее или null-поле превращается
// в nil и пропускается тегом omitempty.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(plainValue,
		models.Optional[string]{},
		models.Optional[bool]{},
		models.Optional[int]{},
		models.Optional[int64]{},
		models.Optional[float64]{},
	)
	return v
}

func plainValue(field reflect.Value) interface{} {
	if o, ok := field.Interface().(interface{ PlainValue() any }); ok {
		return o.PlainValue()
	}
	return nil
}
