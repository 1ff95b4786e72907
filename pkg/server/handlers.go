package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartgrid/pkg/buildinfo"
	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/document"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/httputil"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/render/sink"
	"github.com/matzehuels/chartgrid/pkg/session"
)

var contentTypes = map[string]string{
	sink.FormatSVG: "image/svg+xml",
	sink.FormatPNG: "image/png",
	sink.FormatPDF: "application/pdf",
}

// SessionInfo describes a pick session.
type SessionInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	ExpiresAt time.Time `json:"expires_at"`
	SVGURL    string    `json:"svg_url"`
	PickURL   string    `json:"pick_url"`
}

// PickResult is the JSON answer to a pick query. Which value fields are
// present depends on Kind.
type PickResult struct {
	Hit    bool     `json:"hit"`
	Kind   string   `json:"kind"`
	Text   string   `json:"text,omitempty"`
	X      *float64 `json:"x,omitempty"`
	YLeft  *float64 `json:"y_left,omitempty"`
	YRight *float64 `json:"y_right,omitempty"`
}

// NewPickResult converts a pick to its JSON form.
func NewPickResult(p pipeline.Pick, ok bool) PickResult {
	if !ok {
		return PickResult{Kind: layout.PickNone.String()}
	}
	res := PickResult{Hit: true, Kind: p.Kind.String(), Text: p.Text}
	switch p.Kind {
	case layout.PickXBottomAxis, layout.PickXTopAxis:
		res.X = &p.X
	case layout.PickYLeftAxis:
		res.YLeft = &p.YLeft
	case layout.PickYRightAxis:
		res.YRight = &p.YRight
	case layout.PickPlotArea:
		res.X, res.YLeft, res.YRight = &p.X, &p.YLeft, &p.YRight
	}
	return res
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Render(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Document-Hash", res.DocumentHash)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Draw(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess := session.New(res, s.cfg.SessionTTL)
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "size", strconv.Itoa(sess.Width)+"x"+strconv.Itoa(sess.Height))
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	httputil.WriteJSON(w, http.StatusCreated, info(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info(sess))
}

func (s *Server) handleSessionSVG(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[sink.FormatSVG])
	_, _ = w.Write(sess.SVG)
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	x, err := floatParam(q.Get("x"), "x")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	y, err := floatParam(q.Get("y"), "y")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, ok := pipeline.Query(r.Context(), sess.Pick, x, y)
	httputil.WriteJSON(w, http.StatusOK, NewPickResult(p, ok))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// options reads the posted document and the size query parameters.
func (s *Server) options(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return pipeline.Options{}, err
	}
	if len(body) == 0 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request body must be a chart document")
	}
	opts := pipeline.Options{
		Data:   body,
		Format: document.FormatFromContentType(r.Header.Get("Content-Type")),
		Logger: s.logger,
	}
	q := r.URL.Query()
	if opts.Width, err = intParam(q.Get("width"), "width"); err != nil {
		return pipeline.Options{}, err
	}
	if opts.Height, err = intParam(q.Get("height"), "height"); err != nil {
		return pipeline.Options{}, err
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = floatParam(v, "scale"); err != nil {
			return pipeline.Options{}, err
		}
	}
	return opts, nil
}

func (s *Server) session(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	if !session.ValidID(id) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	return s.sessions.Get(r.Context(), id)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func info(sess *session.Session) SessionInfo {
	base := "/v1/sessions/" + sess.ID
	return SessionInfo{
		ID:        sess.ID,
		Title:     sess.Title,
		Width:     sess.Width,
		Height:    sess.Height,
		ExpiresAt: sess.ExpiresAt,
		SVGURL:    base + "/svg",
		PickURL:   base + "/pick",
	}
}

// intParam parses an optional integer query parameter; empty is zero.
func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be an integer", name)
	}
	return n, nil
}

func floatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s is required", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be a number", name)
	}
	return f, nil
}
