package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pdf-insights/internal/domain"
	apperrors "pdf-insights/pkg/errors"
)

// AnalysisHandler exposes the analysis pipeline over HTTP.
type AnalysisHandler struct {
	service domain.AnalysisService
	runs    domain.RunRepository // nil when persistence is disabled
	logger  domain.Logger
}

func NewAnalysisHandler(service domain.AnalysisService, runs domain.RunRepository, logger domain.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		runs:    runs,
		logger:  logger,
	}
}

// Analyze runs one batch analysis. The request body may optionally
// override the configured documents directory and task file path.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalyzeRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	digest, err := h.service.Analyze(r.Context(), req)
	if err != nil {
		h.logger.Error("Analysis failed", err)
		writeError(w, apperrors.GetStatusCode(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, digest)
}

// LatestRun returns the most recent persisted analysis run.
func (h *AnalysisHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, domain.ErrPersistenceDisabled.Error())
		return
	}

	run, err := h.runs.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to load latest run", err)
		writeError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}

	writeJSON(w, http.StatusOK, run)
}
