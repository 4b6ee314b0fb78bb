package kiosk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// newValidator returns a validator that reports fields by their JSON names
// and knows the kiosk's phone format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Phone numbers are typed on the kiosk keypad: digits with optional
	// spaces, dashes, parentheses and a leading plus.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		digits := 0
		for i, r := range fl.Field().String() {
			switch {
			case r >= '0' && r <= '9':
				digits++
			case r == '+' && i == 0:
			case r == ' ' || r == '-' || r == '(' || r == ')':
			default:
				return false
			}
		}
		return digits >= 7
	})

	return v
}

// decode reads a JSON body into dst and validates it. Malformed bodies are
// EINVALID, oversized ones ETOOLARGE, and tag failures a ValidationError.
func (h *Handler) decode(r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Errorf(domain.ETOOLARGE, op, "Request body too large")
		}
		return domain.Errorf(domain.EINVALID, op, "Invalid request body")
	}

	return h.validateStruct(op, dst)
}

func (h *Handler) validateStruct(op string, v any) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, op, "failed to validate request")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &domain.ValidationError{Op: op, Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "numeric":
		return "Must contain only digits"
	case "datetime":
		return "Must be a date like " + fe.Param()
	case "phone":
		return "Must be a valid phone number"
	default:
		return "Invalid value"
	}
}
