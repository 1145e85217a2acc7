package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mini-admin/internal/domain"
	"mini-admin/internal/middleware"
)

// TotalCountHeader carries the filtered record count of a list response.
const TotalCountHeader = "X-Total-Count"

var errReadOnly = errors.New("data server is read-only")

// Options configures NewRouter.
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	RateLimit      middleware.RateLimitConfig
	// Delay is added before every response, to exercise loading states.
	Delay time.Duration
}

// Server serves a Store over HTTP using json-server routes.
type Server struct {
	store  *Store
	logger *slog.Logger
}

// NewRouter returns the HTTP handler for store.
//
//	GET    /db
//	GET    /{collection}
//	POST   /{collection}
//	GET    /{collection}/{id}
//	PUT    /{collection}/{id}
//	PATCH  /{collection}/{id}
//	DELETE /{collection}/{id}
func NewRouter(store *Store, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{TotalCountHeader, "Link", middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimiter(opts.RateLimit))
	if opts.Delay > 0 {
		r.Use(delay(opts.Delay))
	}

	r.Get("/db", s.handleDB)
	r.Route("/{collection}", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleReplace)
		r.Patch("/{id}", s.handlePatch)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

func (s *Server) handleDB(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(chi.URLParam(r, "collection"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, domain.ErrValidation("%s", err.Error()))
		return
	}
	page := q.Apply(records)

	w.Header().Set(TotalCountHeader, strconv.Itoa(page.Total))
	if link := page.LinkHeader(requestURL(r)); link != "" {
		w.Header().Set("Link", link)
	}
	writeJSON(w, http.StatusOK, page.Items)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRecord(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Insert(chi.URLParam(r, "collection"), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRecord(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Replace(chi.URLParam(r, "collection"), chi.URLParam(r, "id"), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRecord(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Patch(chi.URLParam(r, "collection"), chi.URLParam(r, "id"), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "collection"), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (Record, error) {
	var rec Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&rec); err != nil {
		return nil, domain.ErrValidation("invalid JSON body: %v", err)
	}
	if rec == nil {
		return nil, domain.ErrValidation("request body must be a JSON object")
	}
	return rec, nil
}

// statusFromError maps store and domain errors to HTTP status codes.
func statusFromError(err error) int {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.Is(err, errReadOnly):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestURL(r *http.Request) *url.URL {
	u := *r.URL
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = r.Host
	return &u
}

func delay(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
