package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/save"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RecoveryResponse is returned when a stored save needs a recovery decision
type RecoveryResponse struct {
	Error   string   `json:"error"`
	Options []string `json:"options"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// errorMapping pairs a sentinel with the response it produces
type errorMapping struct {
	target  error
	status  int
	message string
}

// errorTable is checked in order with errors.Is
var errorTable = []errorMapping{
	{domain.ErrTileLocked, http.StatusForbidden, ErrMsgTileLockedUser},
	{domain.ErrSpeciesLocked, http.StatusForbidden, ErrMsgSpeciesLockedUser},
	{domain.ErrOrchardLocked, http.StatusForbidden, ErrMsgOrchardLockedUser},
	{domain.ErrTileOccupied, http.StatusConflict, ErrMsgTileOccupiedUser},
	{domain.ErrTileNotReady, http.StatusConflict, ErrMsgTileNotReadyUser},
	{domain.ErrGridFull, http.StatusConflict, ErrMsgGridFullUser},
	{domain.ErrAlreadyUnlocked, http.StatusConflict, ErrMsgAlreadyUnlockedUser},
	{domain.ErrConfirmationRequired, http.StatusConflict, ErrMsgConfirmRequiredUser},
	{domain.ErrInsufficientFunds, http.StatusBadRequest, ErrMsgNotEnoughCoinsUser},
	{domain.ErrTileOutOfRange, http.StatusBadRequest, ErrMsgTileOutOfRangeUser},
	{domain.ErrInvalidSpecies, http.StatusBadRequest, ErrMsgInvalidSpeciesUser},
	{domain.ErrInvalidGrid, http.StatusBadRequest, ErrMsgInvalidGridUser},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputUser},
	{domain.ErrUnsupportedVersion, http.StatusUnprocessableEntity, ErrMsgNewerVersionUser},
	{domain.ErrCorruptSave, http.StatusUnprocessableEntity, ErrMsgCorruptSaveUser},
	{domain.ErrNoSave, http.StatusNotFound, ErrMsgNoSaveUser},
	{domain.ErrNoBackup, http.StatusNotFound, ErrMsgNoBackupUser},
	{domain.ErrStorage, http.StatusServiceUnavailable, ErrMsgStorageUser},
}

// mapServiceErrorToUserMessage converts a service error to a status code and
// a message the player can act on
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the mapped response. A load that
// needs recovery also lists the recovery options.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())

	var recovery *save.RecoveryRequiredError
	if errors.As(err, &recovery) {
		log.Warn(LogMsgServiceError, "op", op, "error", err)
		respondJSON(w, http.StatusConflict, RecoveryResponse{
			Error:   ErrMsgRecoveryRequiredUser,
			Options: recovery.Options,
		})
		return
	}

	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", op, "error", err)
	} else {
		log.Info(LogMsgServiceError, "op", op, "error", err)
	}
	respondError(w, status, message)
}
