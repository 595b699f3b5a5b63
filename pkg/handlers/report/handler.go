package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/area-atlas/pkg/adapters"
	"github.com/de-tools/area-atlas/pkg/models/api"
	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/models/store"
	"github.com/de-tools/area-atlas/pkg/services/ingest"
	reportsvc "github.com/de-tools/area-atlas/pkg/services/report"
	"github.com/de-tools/area-atlas/pkg/services/run"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/reports"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxRequestBytes = 64 << 20

type Runner interface {
	Run(ctx context.Context, req run.Request) (*run.Outcome, error)
}

// Options control the runs started through the API.
type Options struct {
	OutDir  string
	Sinks   []string
	Publish bool
}

type Handler struct {
	runner      Runner
	runStore    runs.Store
	reportStore reports.Store
	opts        Options
}

func NewHandler(runner Runner, runStore runs.Store, reportStore reports.Store, opts Options) *Handler {
	return &Handler{
		runner:      runner,
		runStore:    runStore,
		reportStore: reportStore,
		opts:        opts,
	}
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ReportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.Error{Error: "invalid request body: " + err.Error()})
		return
	}
	if len(req.Elements) == 0 {
		writeJSON(ctx, w, http.StatusBadRequest, api.Error{Error: "elements are required"})
		return
	}

	elements, err := ingest.LoadElements(bytes.NewReader(req.Elements))
	if err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.Error{Error: "invalid elements: " + err.Error()})
		return
	}

	outcome, err := h.runner.Run(ctx, run.Request{
		Elements: elements,
		Config:   adapters.MapApiReportConfig(req.Config),
		OutDir:   h.opts.OutDir,
		Sinks:    h.opts.Sinks,
		Publish:  h.opts.Publish,
	})
	if err != nil {
		logger.Error().Err(err).Msg("report run failed")
		writeRunError(ctx, w, outcome, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.ReportResponse{
		Run:      adapters.MapDomainRunToApi(outcome.Run),
		Report:   adapters.MapDomainReportToApi(outcome.Report),
		Files:    outcome.Files,
		Location: outcome.Location,
	})
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var statuses []store.RunStatus
	for _, s := range r.URL.Query()["status"] {
		statuses = append(statuses, store.RunStatus(s))
	}

	recorded, err := h.runStore.List(ctx, statuses)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list runs")
		writeJSON(ctx, w, http.StatusInternalServerError, api.Error{Error: "failed to list runs"})
		return
	}

	response := make([]api.Run, 0, len(recorded))
	for _, rec := range recorded {
		response = append(response, adapters.MapDomainRunToApi(adapters.MapStoreRunToDomain(rec)))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	rec, err := h.runStore.Get(ctx, id)
	if errors.Is(err, runs.ErrNotFound) {
		writeJSON(ctx, w, http.StatusNotFound, api.Error{Error: err.Error()})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("run", id).Msg("failed to get run")
		writeJSON(ctx, w, http.StatusInternalServerError, api.Error{Error: "failed to get run"})
		return
	}

	details := api.RunDetails{Run: adapters.MapDomainRunToApi(adapters.MapStoreRunToDomain(rec))}

	tables, cells, err := h.reportStore.Get(ctx, id)
	if err == nil && len(tables) > 0 {
		var restored []domain.Table
		restored, err = adapters.MapStoreReportToDomain(tables, cells)
		if err == nil {
			details.Report = adapters.MapDomainReportToApi(&domain.Report{GeneratedAt: rec.CreatedAt, Tables: restored})
		}
	}
	if err != nil {
		logger.Error().Err(err).Str("run", id).Msg("failed to load stored report")
		writeJSON(ctx, w, http.StatusInternalServerError, api.Error{Error: "failed to load stored report"})
		return
	}

	writeJSON(ctx, w, http.StatusOK, details)
}

// writeRunError answers a failed run with 422 and the recorded run, and any
// other failure with a plain error body.
func writeRunError(ctx context.Context, w http.ResponseWriter, outcome *run.Outcome, err error) {
	stage, staged := reportsvc.FailedStage(err)
	if outcome != nil && outcome.Run != nil {
		writeJSON(ctx, w, http.StatusUnprocessableEntity, api.ReportResponse{
			Run: adapters.MapDomainRunToApi(outcome.Run),
		})
		return
	}
	if staged {
		writeJSON(ctx, w, http.StatusUnprocessableEntity, api.Error{
			Error: err.Error(),
			Stage: string(stage),
			Hint:  domain.RemediationHint,
		})
		return
	}
	writeJSON(ctx, w, http.StatusInternalServerError, api.Error{Error: "failed to run report"})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
