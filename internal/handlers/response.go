package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/crucial707/inventory/internal/apperr"
)

// Messages shared by several handlers.
const (
	MsgInternal      = "Internal server error"
	MsgRouteNotFound = "Route not found"
	MsgInvalidJSON   = "Invalid JSON body"
	MsgBodyTooLarge  = "Request body too large"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Count   *int              `json:"count,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON sends env with the given status.
func WriteJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// JSONError sends a failed envelope carrying only a message.
func JSONError(w http.ResponseWriter, message string, status int) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// JSONValidationError sends a 400 envelope with per-field details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message, Fields: fields})
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, MsgRouteNotFound, http.StatusNotFound)
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Responder turns service errors into envelopes. Internal error detail is only
// sent to clients outside production.
type Responder struct {
	Logger     *slog.Logger
	Production bool
}

// Error writes err and returns the status it used.
func (rs Responder) Error(w http.ResponseWriter, r *http.Request, err error) int {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	if kind != apperr.KindInternal {
		JSONError(w, apperr.MessageOf(err, http.StatusText(status)), status)
		return status
	}

	rs.Logger.Error("request failed",
		"request_id", chimw.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)

	env := Envelope{Success: false, Message: MsgInternal}
	if !rs.Production {
		env.Error = err.Error()
	}
	WriteJSON(w, status, env)
	return status
}

// ==========================
// Request decoding
// ==========================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the request body into dst. An empty body decodes as {}.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		JSONError(w, MsgBodyTooLarge, http.StatusRequestEntityTooLarge)
		return false
	}
	JSONError(w, MsgInvalidJSON, http.StatusBadRequest)
	return false
}

// validateInput checks v's validate tags. On failure it writes a 400 with message
// and the failing fields and returns false.
func validateInput(w http.ResponseWriter, v any, message string) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	JSONValidationError(w, message, fields)
	return false
}
