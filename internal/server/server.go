// Package server exposes the calculator and its exporters over a JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/piwi3910/CorruCalc/internal/bendprog"
	"github.com/piwi3910/CorruCalc/internal/engine"
	"github.com/piwi3910/CorruCalc/internal/export"
	"github.com/piwi3910/CorruCalc/internal/model"
)

const shutdownTimeout = 5 * time.Second

// Server serves the API. The preset store is read-only once the server runs.
type Server struct {
	cfg     Config
	presets model.PresetStore
	logger  *slog.Logger
	handler http.Handler
	limiter *IPRateLimiter
}

func New(cfg Config, presets model.PresetStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		presets: presets,
		logger:  logger,
		limiter: NewIPRateLimiter(rate.Limit(cfg.Rate), cfg.Burst),
	}
	s.handler = CORS(s.routes())
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(s.logger))
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.LimitMiddleware)

	api.HandleFunc("/profile", s.handleProfile).Methods("POST")
	api.HandleFunc("/cost", s.handleCost).Methods("POST")
	api.HandleFunc("/compare", s.handleCompare).Methods("POST")
	api.HandleFunc("/tune", s.handleTune).Methods("POST")
	api.HandleFunc("/program", s.handleProgram).Methods("POST")
	api.HandleFunc("/report/pdf", s.handlePDF).Methods("POST")
	api.HandleFunc("/report/xlsx", s.handleXLSX).Methods("POST")
	api.HandleFunc("/report/chart", s.handleChart).Methods("POST")
	api.HandleFunc("/report/stl", s.handleSTL).Methods("POST")
	api.HandleFunc("/presets", s.handlePresets).Methods("GET")
	api.HandleFunc("/presets/{name}", s.handlePreset).Methods("GET")
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.Sweep(sweepCtx, limiterSweepInterval, limiterIdleTTL)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

// decodeParams reads and validates the Params body shared by most endpoints.
func decodeParams(w http.ResponseWriter, r *http.Request) (model.Params, bool) {
	var p model.Params
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return p, false
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return p, false
	}
	return p, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.Analyze(p))
}

// CostRequest is the body of POST /api/cost.
type CostRequest struct {
	ModuleCount int            `json:"module_count"`
	Leftover    model.Polyline `json:"leftover"`
	CostPerBend float64        `json:"cost_per_bend"`
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	var req CostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.ModuleCount < 0 {
		writeError(w, http.StatusBadRequest, "module_count must not be negative")
		return
	}
	if req.CostPerBend < 0 {
		writeError(w, http.StatusBadRequest, model.ErrInvalidCost.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.EstimateCost(req.ModuleCount, req.Leftover, req.CostPerBend))
}

// CompareResponse is the body returned by POST /api/compare.
type CompareResponse struct {
	Results []engine.ComparisonResult `json:"results"`
	Best    string                    `json:"best,omitempty"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(p))
	resp := CompareResponse{Results: results}
	if best, ok := engine.BestScenario(results); ok {
		resp.Best = best.Scenario.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTune(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.TuneFit(p, engine.DefaultTuneBounds(), engine.DefaultTuneConfig()))
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	gen := bendprog.New(r.URL.Query().Get("profile"))
	code := gen.Generate(model.Analyze(p))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(code))
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, model.Analyze(p)); err != nil {
		s.exportFailed(w, "pdf", err)
		return
	}
	writeFile(w, "application/pdf", "corrugation.pdf", buf.Bytes())
}

func (s *Server) handleXLSX(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, model.Analyze(p)); err != nil {
		s.exportFailed(w, "xlsx", err)
		return
	}
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "corrugation.xlsx", buf.Bytes())
}

func (s *Server) handleSTL(w http.ResponseWriter, r *http.Request) {
	opts := export.DefaultModelOptions()
	q := r.URL.Query()
	for name, dst := range map[string]*float64{"width": &opts.Width, "thickness": &opts.Thickness} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, raw))
			return
		}
		*dst = v
	}
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteSTL(&buf, model.Analyze(p), opts); err != nil {
		s.exportFailed(w, "stl", err)
		return
	}
	writeFile(w, "model/stl", "corrugation.stl", buf.Bytes())
}

var chartContentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	contentType, known := chartContentTypes[format]
	if !known {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported chart format %q", format))
		return
	}
	p, ok := decodeParams(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteChart(&buf, model.Analyze(p), format); err != nil {
		s.exportFailed(w, "chart", err)
		return
	}
	writeFile(w, contentType, "corrugation."+format, buf.Bytes())
}

func (s *Server) exportFailed(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, export.ErrNothingToExport) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Error("export failed", "kind", kind, "error", err)
	writeError(w, http.StatusInternalServerError, "report generation error")
}

// PresetResponse is one entry of GET /api/presets.
type PresetResponse struct {
	model.Preset
	BuiltIn bool `json:"built_in"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]PresetResponse, 0, len(model.BuiltInPresets)+len(s.presets.Presets))
	for _, p := range model.BuiltInPresets {
		out = append(out, PresetResponse{Preset: p, BuiltIn: true})
	}
	for _, p := range s.presets.Presets {
		out = append(out, PresetResponse{Preset: p})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if p := s.presets.FindByName(name); p != nil {
		writeJSON(w, http.StatusOK, PresetResponse{Preset: *p})
		return
	}
	for _, p := range model.BuiltInPresets {
		if p.Name == name {
			writeJSON(w, http.StatusOK, PresetResponse{Preset: p, BuiltIn: true})
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("preset %q not found", name))
}
