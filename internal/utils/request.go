package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/utils/response"
)

// ParseAndValidate decodes the request body into dest and validates it,
// writing the error response itself on failure.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, apperrors.BadRequestError(err.Error()))

		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, apperrors.BadRequestError("Invalid input data"))
		}

		return false
	}

	return true
}

// ValidateQuery validates a struct populated from query parameters, writing
// the error response itself on failure.
func ValidateQuery(w http.ResponseWriter, validate *validator.Validate, dest any) bool {
	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, apperrors.BadRequestError("Invalid query parameters"))
		}

		return false
	}

	return true
}
