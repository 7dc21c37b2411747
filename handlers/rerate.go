package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"

	"rerate/obs"
	"rerate/services"
)

// Rerate serves the bill pricing API.
type Rerate struct {
	Engine   *services.Engine
	Logger   zerolog.Logger
	Metrics  *obs.Metrics
	validate *validator.Validate
}

// NewRerate wires the handlers to an engine. metrics may be nil.
func NewRerate(engine *services.Engine, logger zerolog.Logger, metrics *obs.Metrics) *Rerate {
	if engine == nil {
		engine = services.NewEngine(nil)
	}
	return &Rerate{
		Engine:   engine,
		Logger:   logger,
		Metrics:  metrics,
		validate: NewValidator(),
	}
}

// NewValidator returns a validator that understands the bill model tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("carrier", validCarrier); err != nil {
		panic(fmt.Errorf("register carrier validation: %w", err))
	}
	return v
}

func validCarrier(fl validator.FieldLevel) bool {
	return services.Carrier(fl.Field().String()).Valid()
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func errorResponse(e *core.RequestEvent, status int, code, message string, details any) error {
	return e.JSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: message, Details: details}})
}

// decode binds the JSON body into dst and validates it.
func (h *Rerate) decode(e *core.RequestEvent, dst any) error {
	if err := e.BindBody(dst); err != nil {
		return fmt.Errorf("bind body: %w", err)
	}
	return h.validate.Struct(dst)
}

// badRequest writes a 400 for a decode failure.
func (h *Rerate) badRequest(e *core.RequestEvent, err error) error {
	h.Logger.Debug().Err(err).Str("path", e.Request.URL.Path).Msg("rejected request body")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, validationMessage(fe))
		}
		return errorResponse(e, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
	}
	return errorResponse(e, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "carrier":
		return fmt.Sprintf("%s: unknown carrier %q", fe.Namespace(), fe.Value())
	case "min":
		return fmt.Sprintf("%s: at least %s required", fe.Namespace(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: at most %s allowed", fe.Namespace(), fe.Param())
	case "unique":
		return fmt.Sprintf("%s: duplicate %s", fe.Namespace(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", fe.Namespace(), fe.Param())
	case "required", "required_if":
		return fmt.Sprintf("%s: is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag())
	}
}
