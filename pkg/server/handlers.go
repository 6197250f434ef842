package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/matzehuels/mandel/pkg/buildinfo"
	"github.com/matzehuels/mandel/pkg/cache"
	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/fractal"
	"github.com/matzehuels/mandel/pkg/io"
	"github.com/matzehuels/mandel/pkg/params"
	"github.com/matzehuels/mandel/pkg/pipeline"
)

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type regionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UpperLeft   string `json:"ul"`
	LowerRight  string `json:"lr"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	names := fractal.RegionNames()
	out := make([]regionResponse, 0, len(names))
	for _, name := range names {
		region, _ := fractal.LookupRegion(name)
		out = append(out, regionResponse{
			Name:        region.Name,
			Description: region.Description,
			UpperLeft:   params.FormatComplex(region.UpperLeft),
			LowerRight:  params.FormatComplex(region.LowerRight),
		})
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.counters == nil {
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND", "stats are disabled")
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.counters.Snapshot())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	args := params.Args{
		Size:       q.Get("size"),
		UpperLeft:  q.Get("ul"),
		LowerRight: q.Get("lr"),
		Region:     q.Get("region"),
		Limit:      orDefault(q.Get("limit"), strconv.FormatUint(uint64(s.cfg.Limit), 10)),
		Workers:    s.cfg.Workers,
		Palette:    orDefault(q.Get("palette"), s.cfg.Palette),
		Mapping:    orDefault(q.Get("mapping"), s.cfg.Mapping),
	}
	if v := q.Get("workers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, r, errs.New(errs.ErrCodeInvalidWorkers, "workers must be an integer, got %q", v))
			return
		}
		args.Workers = n
	}

	req, err := params.BuildRequest(args)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errs.ValidatePixelBudget(req.Width, req.Height, s.cfg.MaxPixels); err != nil {
		s.fail(w, r, err)
		return
	}
	format, err := io.ParseFormat(orDefault(q.Get("format"), s.cfg.Format))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	theme, err := io.ParseTheme(orDefault(q.Get("theme"), s.cfg.Theme))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	logger := s.logger.With("request_id", requestIDFromContext(r.Context()))
	res, err := s.runner.Execute(r.Context(), pipeline.Options{Request: req, Logger: logger})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	etag := `"` + cache.Hash([]byte(res.Key+"|"+string(format)+"|"+theme.Name))[:32] + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var body bytes.Buffer
	if err := io.Encode(&body, res.Buffer, format, io.WithTheme(theme), io.WithJPEGQuality(s.cfg.JPEGQuality)); err != nil {
		s.fail(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set("Content-Length", strconv.Itoa(body.Len()))
	h.Set("ETag", etag)
	h.Set("Cache-Control", "public, max-age=86400")
	h.Set("X-Cache", cacheStatus(res.Cached))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
}

// fail writes err as a JSON error with the status its code maps to.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	s.writeError(w, r, status, code, errs.UserMessage(err))
}

func statusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrCodeTooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	s.writeJSON(w, r, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: requestIDFromContext(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "error", err, "request_id", requestIDFromContext(r.Context()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
