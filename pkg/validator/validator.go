package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/homebook/pkg/httpx"
)

var (
	validate *validator.Validate

	mu             sync.RWMutex
	customMessages = map[string]string{}
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// RegisterValidation adds a custom tag to the shared validator. message is
// what FormatValidationErrors reports when the tag fails. Call it from
// package init functions only; registration is not safe alongside Validate.
func RegisterValidation(tag string, fn validator.Func, message string) error {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register %q: %w", tag, err)
	}
	mu.Lock()
	customMessages[tag] = message
	mu.Unlock()
	return nil
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name to human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	mu.RLock()
	msg, ok := customMessages[e.Tag()]
	mu.RUnlock()
	if ok {
		return msg
	}

	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "len":
		return fmt.Sprintf("Length must be %s", e.Param())
	case "numeric":
		return "Must be a numeric value"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	case "datetime":
		return fmt.Sprintf("Must match the format %s", e.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidationResponse is the 422 body written by ValidateRequest.
type ValidationResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes an appropriate error response if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := httpx.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, err.Error())
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, ValidationResponse{
			Message: "Validation failed",
			Fields:  FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
