package handler

import (
	"context"
	"net/http"

	"github.com/osse101/idlefarm/internal/save"
)

// SaveService is the part of *save.Service the HTTP layer drives
type SaveService interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) (save.LoadReport, error)
	ExportText(ctx context.Context) (string, error)
	ImportText(ctx context.Context, text string, confirm bool) (save.LoadReport, error)
	Recover(ctx context.Context, option string) (save.LoadReport, error)
	Status(ctx context.Context) (save.Status, error)
}

// ImportRequest carries exported save text
type ImportRequest struct {
	Data    string `json:"data" validate:"required"`
	Confirm bool   `json:"confirm"`
}

// RecoverRequest picks a recovery option
type RecoverRequest struct {
	Option string `json:"option" validate:"required,oneof=restore_backup reset discard"`
}

// ExportResponse carries the export text
type ExportResponse struct {
	Data string `json:"data"`
}

// LoadResponse reports a load, import or restore
type LoadResponse struct {
	Message    string `json:"message,omitempty"`
	ReadyCrops int    `json:"readyCrops"`
	ReadyTrees int    `json:"readyTrees"`
}

func newLoadResponse(report save.LoadReport) LoadResponse {
	return LoadResponse{
		Message:    report.WelcomeMessage(),
		ReadyCrops: report.ReadyCrops,
		ReadyTrees: report.ReadyTrees,
	}
}

// HandleSave writes the main slot
// @Summary Save the game
// @Description Writes the live state to the main slot
// @Tags save
// @Produce json
// @Success 200 {object} SuccessResponse "Saved"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /save [post]
func HandleSave(svc SaveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Save(r.Context()); err != nil {
			respondServiceError(w, r, "save", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSaved})
	}
}

// HandleLoad replaces the live game with the main slot
// @Summary Load the game
// @Description Replaces the live state with the main slot, catching up offline growth
// @Tags save
// @Produce json
// @Success 200 {object} LoadResponse "Loaded"
// @Failure 404 {object} ErrorResponse "No save"
// @Failure 409 {object} RecoveryResponse "Save unusable, recovery required"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /load [post]
func HandleLoad(svc SaveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Load(r.Context())
		if err != nil {
			respondServiceError(w, r, "load", err)
			return
		}
		respondJSON(w, http.StatusOK, newLoadResponse(report))
	}
}

// HandleExport returns the live game as base64 text
// @Summary Export the save
// @Description Returns the live state as base64 text
// @Tags save
// @Produce json
// @Success 200 {object} ExportResponse "Export text"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /save/export [get]
func HandleExport(svc SaveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.ExportText(r.Context())
		if err != nil {
			respondServiceError(w, r, "export", err)
			return
		}
		respondJSON(w, http.StatusOK, ExportResponse{Data: text})
	}
}

// HandleImport applies exported text. Without confirm nothing changes and 409 is returned.
// @Summary Import a save
// @Description Applies exported text after backing up the current state. Requires confirm
// @Tags save
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Export text"
// @Success 200 {object} LoadResponse "Imported"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Confirmation required"
// @Failure 422 {object} ErrorResponse "Corrupt or newer save"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /save/import [post]
func HandleImport(svc SaveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportRequest
		if err := DecodeAndValidateRequest(r, w, &req, "import"); err != nil {
			return
		}

		report, err := svc.ImportText(r.Context(), req.Data, req.Confirm)
		if err != nil {
			respondServiceError(w, r, "import", err)
			return
		}
		respondJSON(w, http.StatusOK, newLoadResponse(report))
	}
}

// HandleSaveStatus describes the save slots
// @Summary Save slot status
// @Description Reports which slots hold data and whether recovery is pending
// @Tags save
// @Produce json
// @Success 200 {object} save.Status
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /save/status [get]
func HandleSaveStatus(svc SaveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.Status(r.Context())
		if err != nil {
			respondServiceError(w, r, "save status", err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleRecover runs the chosen recovery option
// @Summary Recover from a corrupt save
// @Description Restores the backup, resets to defaults or discards both slots
// @Tags save
// @Accept json
// @Produce json
// @Param request body RecoverRequest true "Recovery option"
// @Success 200 {object} LoadResponse "Recovered"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "No backup"
// @Failure 422 {object} ErrorResponse "Backup unusable"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /save/recover [post]
func HandleRecover(svc SaveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecoverRequest
		if err := DecodeAndValidateRequest(r, w, &req, "recover"); err != nil {
			return
		}

		report, err := svc.Recover(r.Context(), req.Option)
		if err != nil {
			respondServiceError(w, r, "recover", err)
			return
		}
		resp := newLoadResponse(report)
		if resp.Message == "" {
			resp.Message = MsgRecovered
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
