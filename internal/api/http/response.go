package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondList[T any](w http.ResponseWriter, r *http.Request, items []T, total int32) {
	if items == nil {
		items = []T{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(int(total)))
	respondJSON(w, r, http.StatusOK, items)
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{Message: message, Code: code})
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{domain.ErrAvailabilityUnknown, http.StatusServiceUnavailable, "availability_unknown"},
	{domain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range"},
	{domain.ErrNegativePrice, http.StatusBadRequest, "invalid_price"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{domain.ErrToolNotFound, http.StatusNotFound, "tool_not_found"},
	{domain.ErrCustomerNotFound, http.StatusNotFound, "customer_not_found"},
	{domain.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
	{domain.ErrBookingConflict, http.StatusConflict, "booking_conflict"},
	{domain.ErrDatesUnavailable, http.StatusConflict, "dates_unavailable"},
	{domain.ErrToolUnavailable, http.StatusConflict, "tool_unavailable"},
	{domain.ErrCustomerExists, http.StatusConflict, "customer_exists"},
	{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{domain.ErrInvalidPaymentTransition, http.StatusConflict, "invalid_payment_transition"},
	{domain.ErrPriceMismatch, http.StatusConflict, "price_mismatch"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
}

// respondError maps domain errors to status codes. Unknown errors become a 500 with a generic
// message; the cause is only logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status >= 500 {
				logger.ErrorContext(r.Context(), "Request failed", "error", err)
			}
			respondMessage(w, r, m.status, m.code, publicMessage(err, m.target))
			return
		}
	}
	logger.ErrorContext(r.Context(), "Unhandled error", "error", err)
	respondMessage(w, r, http.StatusInternalServerError, "internal", "internal server error")
}

// publicMessage keeps the detail callers add around domain errors, except for upstream
// failures where the detail is internal.
func publicMessage(err, target error) string {
	if errors.Is(target, domain.ErrAvailabilityUnknown) {
		return "availability could not be determined, please try again"
	}
	return err.Error()
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		respondMessage(w, r, http.StatusBadRequest, "invalid_json", "failed to decode request")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			respondJSON(w, r, http.StatusBadRequest, validationError(validateErr))
			return false
		}
		respondError(w, r, err)
		return false
	}
	return true
}

func validationError(errs validator.ValidationErrors) ErrorResponse {
	fields := make(map[string]string, len(errs))
	var msgs []string
	for _, err := range errs {
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "is not a valid email"
		case "gte", "min":
			msg = fmt.Sprintf("must be at least %s", err.Param())
		case "lte", "max":
			msg = fmt.Sprintf("must be at most %s", err.Param())
		case "datetime":
			msg = "must be a yyyy-mm-dd date"
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())
		default:
			msg = "is not valid"
		}
		name := err.Field()
		fields[name] = msg
		msgs = append(msgs, fmt.Sprintf("field %s %s", name, msg))
	}
	return ErrorResponse{
		Message: strings.Join(msgs, ", "),
		Code:    "validation_failed",
		Fields:  fields,
	}
}

// pathID parses a positive int32 path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrInvalidInput)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrInvalidInput)
	}
	return int32(v), nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrInvalidInput)
	}
	return v, nil
}
