package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

// respondError maps service errors to status codes. The error is attached
// to the gin context so the access log carries it.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		vErr   *domain.ValidationError
		svcErr *domain.ServiceError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Message: "validation error", Errors: vErr.Fields})
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Flight not found"})
	case errors.Is(err, domain.ErrTicketAlreadyCanceled):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Ticket already canceled"})
	case errors.Is(err, domain.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Ticket not found"})
	case errors.Is(err, domain.ErrPrivilegeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Privilege not found"})
	case errors.As(err, &svcErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: serviceName(svcErr.Service) + " Service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}

func serviceName(s string) string {
	if s == "" {
		return "Backing"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindingError turns a ShouldBindJSON failure into a field-level
// validation error.
func bindingError(err error) *domain.ValidationError {
	var (
		vErrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &vErrs):
		fields := make([]domain.FieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, domain.FieldError{Field: fe.Field(), Description: describe(fe)})
		}
		return &domain.ValidationError{Fields: fields}
	case errors.As(err, &typeErr):
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field:       typeErr.Field,
			Description: fmt.Sprintf("must be %s", jsonKind(typeErr.Type)),
		}}}
	case errors.As(err, &synErr):
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Description: "malformed JSON"}}}
	default:
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Description: err.Error()}}}
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return "of type " + t.String()
	}
}
