// Package validation checks request payloads at the HTTP boundary using
// struct tags, before anything reaches a service.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/douglasmeneses/clinica-api/internal/platform/apperr"
)

const invalidPayload = "Dados inválidos"

// Validator implements echo.Validator.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock replaces time.Now for the past/future rules.
func WithClock(now func() time.Time) Option {
	return func(cv *Validator) { cv.now = now }
}

func New(opts ...Option) *Validator {
	cv := &Validator{
		v:   validator.New(validator.WithRequiredStructEnabled()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(cv)
	}

	cv.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(cv.v, "digits", digits)
	mustRegister(cv.v, "isodate", isoDate)
	mustRegister(cv.v, "past", cv.past)
	mustRegister(cv.v, "future", cv.future)

	return cv
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Validate returns an *apperr.Error of kind Validation listing every
// rejected field.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperr.NewValidation(invalidPayload, fields)
}

func digits(fl validator.FieldLevel) bool {
	return isDigits(fl.Field().String())
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := ParseTime(fl.Field().String())
	return err == nil
}

func (cv *Validator) past(fl validator.FieldLevel) bool {
	t, err := ParseTime(fl.Field().String())
	return err == nil && t.Before(cv.now())
}

func (cv *Validator) future(fl validator.FieldLevel) bool {
	t, err := ParseTime(fl.Field().String())
	return err == nil && t.After(cv.now())
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", f)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter pelo menos %s caracteres", f, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", f, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres", f, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s", f, fe.Param())
	case "len":
		return fmt.Sprintf("%s deve ter exatamente %s dígitos", f, fe.Param())
	case "email":
		return fmt.Sprintf("%s deve ter um formato válido", f)
	case "digits":
		return fmt.Sprintf("%s deve conter apenas números", f)
	case "gt":
		return fmt.Sprintf("%s deve ser positivo", f)
	case "isodate":
		return fmt.Sprintf("%s deve ser uma data válida", f)
	case "past":
		return fmt.Sprintf("%s deve ser no passado", f)
	case "future":
		return fmt.Sprintf("%s deve ser no futuro", f)
	default:
		return fmt.Sprintf("%s é inválido", f)
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 timestamps, date-times without offset (read as
// UTC) and plain dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseID reads a positive integer path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !isDigits(raw) {
		return 0, apperr.NewValidation(invalidPayload, []apperr.FieldError{{Field: "id", Message: "ID deve ser um número válido"}})
	}
	if id <= 0 {
		return 0, apperr.NewValidation(invalidPayload, []apperr.FieldError{{Field: "id", Message: "ID deve ser positivo"}})
	}
	return id, nil
}
