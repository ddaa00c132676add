package models

import "encoding/json"

// Optional - поле частичного обновления, различающее три состояния
// JSON-входа: поле отсутствует (Set=false, значение не трогается),
// поле передано как null (Set=true, Value=nil, значение обнуляется),
// поле передано со значением (Set=true, Value указывает на него).
// Обычный указатель склеивает первые два состояния, из-за чего
// nullable-колонку невозможно было бы очистить событием или патчем.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// SetTo возвращает присутствующее поле со значением v.
func SetTo[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// SetNull возвращает присутствующее поле с явным null.
func SetNull[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsZero сообщает об отсутствующем поле: в паре с тегом omitzero
// такое поле не попадает в документ при сериализации.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// MarshalJSON сериализует присутствующее поле: null или значение.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// UnmarshalJSON вызывается только для присутствующих в документе полей,
// поэтому сам факт вызова фиксирует присутствие.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// PlainValue возвращает внутреннее значение для валидатора:
// отсутствующее или null-поле видно ему как nil и пропускается
// через omitempty.
func (o Optional[T]) PlainValue() any {
	if !o.Set || o.Value == nil {
		return nil
	}
	return *o.Value
}
