package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// An empty body decodes as the zero value so optional-field requests may omit it.
// On error the response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, op string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn(LogMsgDecodeFailed, "op", op, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "op", op)

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Info(LogMsgValidationFailed, "op", op, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// gridParam reads the {grid} URL parameter. On error the response has already been written.
func gridParam(w http.ResponseWriter, r *http.Request) (domain.GridKind, bool) {
	kind := domain.GridKind(chi.URLParam(r, ParamGrid))
	if !kind.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidGridParam)
		return "", false
	}
	return kind, true
}
