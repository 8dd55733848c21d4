package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"feedback-intel-go/internal/actionable"
	"feedback-intel-go/internal/aggregator"
	"feedback-intel-go/internal/dataset"
	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/metrics"
	"feedback-intel-go/internal/pipeline"
	"feedback-intel-go/internal/processor"
	"feedback-intel-go/internal/types"
)

const maxClassifyBody = 1 << 20

type Handler struct {
	feed *pipeline.Feed
	log  *logger.Logger
	now  func() time.Time
}

func New(feed *pipeline.Feed, log *logger.Logger) *Handler {
	return &Handler{feed: feed, log: log, now: time.Now}
}

type feedbackResponse struct {
	LastRefresh time.Time                `json:"last_refresh"`
	Live        bool                     `json:"live"`
	Total       int                      `json:"total"`
	Matched     int                      `json:"matched"`
	Options     aggregator.Options       `json:"options"`
	Items       []aggregator.ExplorerRow `json:"items"`
}

type insightsResponse struct {
	LastRefresh time.Time               `json:"last_refresh"`
	Live        bool                    `json:"live"`
	Insight     aggregator.Insight      `json:"insight"`
	Actions     []actionable.ActionCard `json:"actions"`
}

type refreshResponse struct {
	LastRefresh time.Time `json:"last_refresh"`
	Total       int       `json:"total"`
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", h.instrument("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	mux.Handle("GET /api/feedback", h.instrument("/api/feedback", h.feedback))
	mux.Handle("GET /api/insights", h.instrument("/api/insights", h.insights))
	mux.Handle("POST /api/classify", h.instrument("/api/classify", h.classify))
	mux.Handle("POST /api/refresh", h.instrument("/api/refresh", h.refresh))
	mux.Handle("GET /api/export.xlsx", h.instrument("/api/export.xlsx", h.exportXLSX))
	mux.Handle("GET /api/export.csv", h.instrument("/api/export.csv", h.exportCSV))
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// filtered loads the session batch and applies the request's filters.
func (h *Handler) filtered(w http.ResponseWriter, r *http.Request) (pipeline.Result, []types.Record, bool) {
	res := h.feed.Records(r.Context(), sessionID(r), h.now(), autoRefresh(r))
	f, err := parseFilter(r.URL.Query(), res.Records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return res, nil, false
	}
	return res, aggregator.Apply(res.Records, f), true
}

func (h *Handler) feedback(w http.ResponseWriter, r *http.Request) {
	res, recs, ok := h.filtered(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, feedbackResponse{
		LastRefresh: res.LastRefresh,
		Live:        res.Live,
		Total:       len(res.Records),
		Matched:     len(recs),
		Options:     aggregator.OptionsFor(res.Records),
		Items:       aggregator.Explorer(recs),
	})
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	res, recs, ok := h.filtered(w, r)
	if !ok {
		return
	}
	ins := aggregator.Aggregate(recs)
	h.writeJSON(w, r, http.StatusOK, insightsResponse{
		LastRefresh: res.LastRefresh,
		Live:        res.Live,
		Insight:     ins,
		Actions:     actionable.Generate(ins),
	})
}

func (h *Handler) classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClassifyBody)).Decode(&req); err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Warn("invalid classify body")
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	scored := processor.ClassifyAndScore(req.Text)
	metrics.RecordsClassified.WithLabelValues(scored.ProductArea, scored.IssueType).Inc()
	h.writeJSON(w, r, http.StatusOK, scored)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	res := h.feed.Refresh(r.Context(), sessionID(r), h.now())
	h.writeJSON(w, r, http.StatusOK, refreshResponse{LastRefresh: res.LastRefresh, Total: len(res.Records)})
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	_, recs, ok := h.filtered(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(h.now(), "xlsx"))
	if err := dataset.ExportXLSX(recs, w); err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Error("xlsx export failed")
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	_, recs, ok := h.filtered(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment(h.now(), "csv"))
	if err := dataset.ExportCSV(recs, w); err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Error("csv export failed")
	}
}

func attachment(now time.Time, ext string) string {
	return fmt.Sprintf("attachment; filename=feedback-export-%s.%s", now.Format("2006-01-02"), ext)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Error("failed to write response")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) instrument(path string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r)
		metrics.HTTPRequests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		h.log.WithRequest(r).
			WithField("status", rec.status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Debug("request handled")
	})
}
