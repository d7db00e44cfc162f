package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator valida structs de entrada según sus tags `validate`.
type Validator interface {
	Validate(s any) error
}

// DefaultValidator implementación sobre go-playground/validator.
// Los errores usan el nombre JSON del campo (nombre, stockMinimo, ...).
type DefaultValidator struct {
	v *validator.Validate
}

// New construye el validador con los tipos propios registrados.
func New() *DefaultValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimal.Decimal se valida como número (precio: gte=0)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &DefaultValidator{v: v}
}

// Validate valida s. Devuelve validator.ValidationErrors si algún campo no cumple.
func (v *DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError indica si err proviene de la validación de campos.
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

// Details devuelve un mensaje por campo inválido ("nombre: es requerido").
func Details(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fmt.Sprintf("%s: %s", fe.Field(), Message(fe)))
	}
	return out
}

// Message traduce un error de campo a español.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "uuid":
		return "debe ser un identificador válido"
	case "email":
		return "debe ser un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no puede exceder %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de [%s]", fe.Param())
	default:
		return "no es válido"
	}
}
