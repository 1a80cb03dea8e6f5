package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sheetdiff/app"
	"sheetdiff/domain/diff"
	"sheetdiff/internal"
	"sheetdiff/ports"
)

// App is the JSON API for programmatic comparisons: callers POST two file
// paths plus options and get the classified result back.
type App struct {
	router  *chi.Mux
	logger  *internal.Logger
	service *app.CompareService
}

// NewApp creates the API application
func NewApp(logger *internal.Logger, service *app.CompareService) *App {
	a := &App{
		router:  chi.NewRouter(),
		logger:  logger,
		service: service,
	}
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
	a.router.Post("/api/compare", a.handleCompare)
	return a
}

// Router exposes the http handler for serving and tests
func (a *App) Router() http.Handler {
	return a.router
}

// Run starts the API server on the given port
func (a *App) Run(port string) error {
	a.logger.Info("compare API listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

// CompareRequest is the POST /api/compare payload
type CompareRequest struct {
	OldFile    string   `json:"old_file"`
	NewFile    string   `json:"new_file"`
	KeyColumns []string `json:"key_columns,omitempty"`
	Sheet      string   `json:"sheet,omitempty"`
	SheetIndex int      `json:"sheet_index,omitempty"`
}

// CompareResponse is the POST /api/compare reply
type CompareResponse struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Sheet    string       `json:"sheet"`
	Summary  diff.Summary `json:"summary"`
	Warnings []string     `json:"warnings,omitempty"`
}

func (a *App) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OldFile == "" || req.NewFile == "" {
		writeError(w, http.StatusBadRequest, "old_file and new_file are required")
		return
	}

	run, err := a.service.Run(r.Context(), app.RunRequest{
		OldPath:    req.OldFile,
		NewPath:    req.NewFile,
		KeyColumns: req.KeyColumns,
		Sheet:      ports.SheetSelector{Name: req.Sheet, Index: req.SheetIndex},
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, diff.ErrDuplicateKey) || errors.Is(err, diff.ErrMissingKeyColumn) {
			status = http.StatusUnprocessableEntity
		}
		a.logger.Error("compare failed: %v", err)
		writeError(w, status, err.Error())
		return
	}

	warnings := make([]string, 0, len(run.Result.Warnings))
	for _, warning := range run.Result.Warnings {
		warnings = append(warnings, warning.String())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CompareResponse{
		ID:       run.ID.String(),
		Label:    run.Label,
		Sheet:    run.Sheet,
		Summary:  run.Result.Summary,
		Warnings: warnings,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
