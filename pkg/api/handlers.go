package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/diff"
	errs "github.com/matzehuels/gridcompose/pkg/errors"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/manifest"
	"github.com/matzehuels/gridcompose/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts := pipeline.Options{
		Manifest:       body,
		ManifestFormat: manifestFormat(r),
		Formats:        []string{format},
		HasMore:        boolParam(q.Get("has_more")),
		Detailed:       boolParam(q.Get("detailed")),
		Refresh:        boolParam(q.Get("refresh")),
	}
	if v := q.Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidWidth, "invalid width %q", v))
			return
		}
		if err := errs.ValidateWidth(width); err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Width = width
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Items-Hash", res.ItemsHash)
	h.Set("X-Cache", cacheStatus(res.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// diffRequest carries two manifests in the same format.
type diffRequest struct {
	Format string `json:"format"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type diffResponse struct {
	Summary string      `json:"summary"`
	Empty   bool        `json:"empty"`
	Diff    diff.Result `json:"diff"`
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req diffRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode diff request"))
		return
	}
	if req.Format == "" {
		req.Format = manifest.FormatTOML
	}

	from, err := sectionsOf(req.From, req.Format)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.GetCode(err), err, "from: %s", errs.UserMessage(err)))
		return
	}
	to, err := sectionsOf(req.To, req.Format)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.GetCode(err), err, "to: %s", errs.UserMessage(err)))
		return
	}

	d := diff.Compute(from, to)
	writeJSON(w, http.StatusOK, diffResponse{Summary: d.Summary(), Empty: d.IsEmpty(), Diff: d})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body")
	}
	if len(data) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty request body")
	}
	return data, nil
}

// sectionsOf parses an empty manifest as no sections.
func sectionsOf(text, format string) ([]grid.Section, error) {
	if text == "" {
		return nil, nil
	}
	doc, err := manifest.Parse([]byte(text), format)
	if err != nil {
		return nil, err
	}
	items, err := doc.Items()
	if err != nil {
		return nil, err
	}
	return compose.Build(items, doc.HasMore), nil
}

func manifestFormat(r *http.Request) string {
	if f := r.URL.Query().Get("manifest_format"); f != "" {
		return f
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/json":
		return manifest.FormatJSON
	case "application/toml", "text/toml", "", "text/plain":
		return manifest.FormatTOML
	}
	return mt
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func cacheStatus(ci pipeline.CacheInfo) string {
	switch {
	case ci.LayoutHit && ci.RenderHit:
		return "hit"
	case ci.LayoutHit:
		return "layout-hit"
	}
	return "miss"
}
