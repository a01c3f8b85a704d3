package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lturtle/pkg/buildinfo"
	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/observability"
	"github.com/matzehuels/lturtle/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// PresetResponse describes one preset in GET /v1/presets.
type PresetResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Axiom       string   `json:"axiom"`
	Rules       []string `json:"rules"`
	Generations int      `json:"generations"`
	Angle       float64  `json:"angle"`
}

// GenerateResponse is the body of POST /v1/generate.
type GenerateResponse struct {
	Program     string `json:"program"`
	Symbols     int    `json:"symbols"`
	Generations int    `json:"generations"`
	Cached      bool   `json:"cached"`
}

// ErrorResponse wraps an error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the machine-readable part of an error response.
type ErrorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	infos := config.Presets()
	out := make([]PresetResponse, 0, len(infos))
	for _, info := range infos {
		cfg, err := config.Preset(info.Name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out = append(out, PresetResponse{
			Name:        info.Name,
			Description: info.Description,
			Axiom:       cfg.Grammar.Axiom,
			Rules:       cfg.Grammar.Rules,
			Generations: cfg.Grammar.Generations,
			Angle:       cfg.Turtle.Angle,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	program, cached, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{
		Program:     program,
		Symbols:     len(program),
		Generations: opts.Generations,
		Cached:      cached,
	})
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Symbols", strconv.Itoa(result.Stats.Symbols))
	h.Set("X-Segments", strconv.Itoa(result.Stats.Segments))
	h.Set("X-Cache", cacheStatus(result.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// decodeOptions reads the body over the named preset (or the server base)
// and clamps MaxLength to the server cap.
func (s *Server) decodeOptions(r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) > MaxBodySize {
		return pipeline.Options{}, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", MaxBodySize)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var head struct {
		Preset string `json:"preset"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}

	base := *s.opts.Base
	if head.Preset != "" {
		if base, err = config.Preset(head.Preset); err != nil {
			return pipeline.Options{}, err
		}
	}

	opts := pipeline.FromConfig(base)
	opts.MaxLength = 0
	if err := json.Unmarshal(body, &opts); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if opts.MaxLength <= 0 || opts.MaxLength > s.opts.MaxLength {
		opts.MaxLength = s.opts.MaxLength
	}
	opts.Logger = log.FromContext(r.Context())
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	code := errors.GetCode(err)
	switch {
	case code != "":
	case stderrors.Is(err, context.DeadlineExceeded):
		code = errors.ErrCodeTimeout
	default:
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)

	observability.HTTP().OnError(ctx, r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		log.FromContext(ctx).Error("request failed", "err", err)
	} else {
		log.FromContext(ctx).Debug("request rejected", "code", code, "err", err)
	}

	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestID(ctx),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func cacheStatus(info pipeline.CacheInfo) string {
	switch {
	case info.GenerateHit && info.RenderHit:
		return "HIT"
	case info.GenerateHit || info.RenderHit:
		return "PARTIAL"
	default:
		return "MISS"
	}
}
