// Package service holds the orchestration layer: request validation,
// the client-side billing rules, and the fan-out to the core API and
// the recognition services.
package service

import (
	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("service")

var validate = validator.New()

// validateStruct runs the struct tags and converts the first violation
// into a typed validation error for the handler layer.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return &domain.ErrValidation{
			Field:   fe.Field(),
			Message: "valor invalido (" + fe.Tag() + ")",
		}
	}
	return &domain.ErrValidation{Field: "", Message: err.Error()}
}
