package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/leaptoken/internal/export"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/style"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/starfederation/datastar-go/datastar"
)

// Reserved theme names for /themes/{theme}.css.
const (
	themeCurrent = "current"
	themeBase    = "base"
)

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
	)

	r.Get("/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5), themeScope(s.provider))

		r.Get("/healthz", s.handleHealth)
		r.Route("/api", func(r chi.Router) {
			r.Get("/tokens", s.handleTokens)
			r.Get("/tokens/{name}", s.handleToken)
			r.Get("/themes", s.handleThemes)
			r.Get("/style/{component}", s.handleStyle)
		})
		r.Get("/themes/{theme}.css", s.handleThemeCSS)
	})
	return r
}

type healthResponse struct {
	Status      string   `json:"status"`
	Fingerprint string   `json:"fingerprint"`
	Themes      []string `json:"themes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cur := s.current(r)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Fingerprint: cur.Fingerprint(),
		Themes:      nonNil(cur.Overrides()),
	})
}

type tokenEntry struct {
	Name     string         `json:"name"`
	Category token.Category `json:"category"`
	Value    any            `json:"value"`
}

type tokensResponse struct {
	Fingerprint string       `json:"fingerprint"`
	Themes      []string     `json:"themes"`
	Platform    string       `json:"platform"`
	Tokens      []tokenEntry `json:"tokens"`
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	cur := s.current(r)
	p, err := s.platformParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var category token.Category
	if c := r.URL.Query().Get("category"); c != "" {
		if category, err = token.ParseCategory(c); err != nil {
			writeErrorKind(w, http.StatusBadRequest, "invalid_category", err)
			return
		}
	}
	if notModified(w, r, etag(cur.Fingerprint(), string(p), string(category))) {
		return
	}

	entries, err := s.resolver(cur).ResolveAll(p)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := tokensResponse{
		Fingerprint: cur.Fingerprint(),
		Themes:      nonNil(cur.Overrides()),
		Platform:    string(p),
		Tokens:      make([]tokenEntry, 0, len(entries)),
	}
	for _, e := range entries {
		if category != "" && e.Category != category {
			continue
		}
		resp.Tokens = append(resp.Tokens, tokenEntry{Name: e.Name, Category: e.Category, Value: e.Value})
	}
	writeJSON(w, http.StatusOK, resp)
}

type tokenResponse struct {
	Name         string         `json:"name"`
	Category     token.Category `json:"category"`
	Description  string         `json:"description,omitempty"`
	Platform     string         `json:"platform"`
	Value        any            `json:"value"`
	Dependencies []string       `json:"dependencies"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	cur := s.current(r)
	name := chi.URLParam(r, "name")
	p, err := s.platformParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := cur.Set().Lookup(name)
	if err != nil {
		writeError(w, err)
		return
	}
	if notModified(w, r, etag(cur.Fingerprint(), string(p), name)) {
		return
	}
	value, err := s.resolver(cur).Resolve(name, p)
	if err != nil {
		writeError(w, err)
		return
	}
	deps, err := resolve.Dependencies(cur.Set(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Name:         tok.Name,
		Category:     tok.Category,
		Description:  tok.Description,
		Platform:     string(p),
		Value:        value,
		Dependencies: nonNil(deps),
	})
}

type themeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tokens      int    `json:"tokens"`
}

type themesResponse struct {
	Active      []string    `json:"active"`
	Fingerprint string      `json:"fingerprint"`
	Themes      []themeInfo `json:"themes"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	cur := s.current(r)
	catalog := s.Project().Themes
	resp := themesResponse{
		Active:      nonNil(cur.Overrides()),
		Fingerprint: cur.Fingerprint(),
		Themes:      make([]themeInfo, 0, catalog.Len()),
	}
	for _, name := range catalog.Names() {
		o, err := catalog.Get(name)
		if err != nil {
			continue
		}
		resp.Themes = append(resp.Themes, themeInfo{Name: o.Name, Description: o.Description, Tokens: len(o.Tokens)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "theme")

	var (
		resolved *theme.Resolved
		err      error
	)
	switch name {
	case themeCurrent:
		resolved = s.current(r)
	case themeBase:
		resolved = theme.FromSet(s.Project().Base)
	default:
		resolved, err = s.Project().Compose(name)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if notModified(w, r, etag(resolved.Fingerprint(), "css")) {
		return
	}

	var buf bytes.Buffer
	if err := export.Export(&buf, "css", resolved, export.Options{Selector: s.cfg.Selector, RemBase: s.cfg.RemBase}); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

type styleProp struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type styleResponse struct {
	Component string      `json:"component"`
	Platform  string      `json:"platform"`
	Props     []styleProp `json:"props"`
	CSS       string      `json:"css,omitempty"`
}

// handleStyle builds a component style from token names given as query
// parameters: /api/style/box?background=color.surface.base&padding=spacing.md
func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	cur := s.current(r)
	p, err := s.platformParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	res := s.resolver(cur)

	var st style.Style
	component := chi.URLParam(r, "component")
	switch component {
	case "box":
		st, err = style.Box{
			Background: q.Get("background"),
			Border:     q.Get("border"),
			Padding:    q.Get("padding"),
			Radius:     q.Get("radius"),
			Shadow:     q.Get("shadow"),
		}.Build(res, p)
	case "text":
		st, err = style.Text{
			Color:         q.Get("color"),
			Typography:    q.Get("typography"),
			LetterSpacing: q.Get("letterSpacing"),
		}.Build(res, p)
	default:
		writeErrorKind(w, http.StatusNotFound, "unknown_component", fmt.Errorf("unknown component %q (available: box, text)", component))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := styleResponse{Component: component, Platform: string(p), Props: make([]styleProp, 0, len(st.Props))}
	for _, prop := range st.Props {
		resp.Props = append(resp.Props, styleProp{Name: prop.Name, Value: prop.Value})
	}
	if p == platform.Web {
		resp.CSS = st.CSS()
	}
	writeJSON(w, http.StatusOK, resp)
}

type themeSignals struct {
	Fingerprint string   `json:"fingerprint"`
	Themes      []string `json:"themes"`
}

// handleEvents streams a signal patch with the active theme's fingerprint,
// once on connect and again after every publish.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	updates := s.provider.Subscribe()
	defer s.provider.Unsubscribe(updates)

	sse := datastar.NewSSE(w, r)
	cur := s.provider.Current()
	if err := sse.MarshalAndPatchSignals(themeSignals{Fingerprint: cur.Fingerprint(), Themes: nonNil(cur.Overrides())}); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-updates:
			if !ok {
				return
			}
			if err := sse.MarshalAndPatchSignals(themeSignals{Fingerprint: ev.Fingerprint, Themes: nonNil(ev.Overrides)}); err != nil {
				_ = sse.ConsoleError(err)
				return
			}
		}
	}
}

// current returns the theme pinned by themeScope, or the provider's.
func (s *Server) current(r *http.Request) *theme.Resolved {
	if t, ok := theme.FromContext(r.Context()); ok {
		return t
	}
	return s.provider.Current()
}

func (s *Server) platformParam(r *http.Request) (platform.Platform, error) {
	name := r.URL.Query().Get("platform")
	if name == "" {
		return s.cfg.Platform, nil
	}
	return platform.Parse(name)
}

func (s *Server) resolver(r *theme.Resolved) *resolve.Resolver {
	return r.Resolver(resolve.WithRemBase(s.cfg.RemBase), resolve.WithLogger(s.logger))
}

func etag(parts ...string) string {
	return `"` + strings.Join(parts, "-") + `"`
}

// notModified sets the ETag header and answers 304 when the client already
// holds this representation.
func notModified(w http.ResponseWriter, r *http.Request, tag string) bool {
	w.Header().Set("ETag", tag)
	if match := r.Header.Get("If-None-Match"); match != "" {
		for _, candidate := range strings.Split(match, ",") {
			if c := strings.TrimSpace(candidate); c == tag || c == "*" {
				w.WriteHeader(http.StatusNotModified)
				return true
			}
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
