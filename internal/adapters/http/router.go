// Package httpadapter exposes batch ingestion and analysis over HTTP.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/core/ports"
	"github.com/flashnarrative/brandpulse/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	ingestor ports.BatchIngestor
	analyzer ports.AnalysisService
	repo     ports.BatchRepository
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestor ports.BatchIngestor,
	analyzer ports.AnalysisService,
	repo ports.BatchRepository,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		ingestor: ingestor,
		analyzer: analyzer,
		repo:     repo,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/batches", rt.createBatch)
	mux.HandleFunc("/v1/batches/", rt.batchSubresource)
	mux.HandleFunc("/v1/analyze", rt.analyzeSync)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestLogMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type mentionsRequest struct {
	Mentions []domain.Mention `json:"mentions"`
}

func (rt *Router) createBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req mentionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	batch, err := rt.ingestor.Ingest(r.Context(), req.Mentions)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordBatchIngested(serviceName, batch.MentionCount)
	}
	writeJSON(w, http.StatusAccepted, batch)
}

// batchSubresource serves /v1/batches/{batch_id} and
// /v1/batches/{batch_id}/result.
func (rt *Router) batchSubresource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/batches/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "batch id is required"})
		return
	}

	switch sub {
	case "":
		rt.getBatch(w, r, id)
	case "result":
		rt.getBatchResult(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getBatch(w http.ResponseWriter, r *http.Request, id string) {
	batch, err := rt.repo.GetBatch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// getBatchResult answers 409 while the batch has not reached the ready
// status, so pollers can tell "not yet" from "no such batch".
func (rt *Router) getBatchResult(w http.ResponseWriter, r *http.Request, id string) {
	batch, err := rt.repo.GetBatch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if batch.Status != domain.BatchReady {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":  "analysis result not ready",
			"status": string(batch.Status),
		})
		return
	}

	result, err := rt.repo.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) analyzeSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req mentionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	result, err := rt.analyzer.Analyze(r.Context(), req.Mentions)
	if rt.metrics != nil {
		rt.metrics.RecordSyncAnalysis(serviceName, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
