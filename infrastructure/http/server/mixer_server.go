package server

import (
	"io"
	"log/slog"
	"net/http"
	"pop-lab/domain"
	"pop-lab/errors"
	"pop-lab/services"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
)

const maxBodyBytes = 64 << 10

type MixerServer struct {
	mixerService services.IMixerService
	gatherer     prometheus.Gatherer
	log          *slog.Logger
	rateRequests int
	rateWindow   time.Duration
}

func NewMixerServer(log *slog.Logger, mixerService services.IMixerService, gatherer prometheus.Gatherer) *MixerServer {
	return &MixerServer{mixerService: mixerService, gatherer: gatherer, log: log}
}

// WithRateLimit caps the API at requests per window and per client IP. Zero requests disables it.
// Probes are never limited.
func (s *MixerServer) WithRateLimit(requests int, window time.Duration) *MixerServer {
	s.rateRequests = requests
	s.rateWindow = window
	return s
}

type composeRequest struct {
	UserID      string   `json:"user_id"`
	Preferences []string `json:"preferences"`
	Text        string   `json:"text"`
}

type featuredRequest struct {
	UserID string `json:"user_id"`
}

type preferencesBody struct {
	UserID      string   `json:"user_id,omitempty"`
	Preferences []string `json:"preferences"`
}

type compositionResponse struct {
	ID        string     `json:"id,omitempty"`
	Syrups    []string   `json:"syrups"`
	Soda      []string   `json:"soda"`
	AddIns    []string   `json:"addins"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type historyResponse struct {
	Compositions []compositionResponse `json:"compositions"`
	Cursor       *string               `json:"cursor,omitempty"`
}

type catalogResponse struct {
	Category string               `json:"category"`
	Items    []domain.CatalogItem `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Routes builds the chi router serving the API, the Prometheus registry and a liveness probe.
func (s *MixerServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if s.rateRequests > 0 {
			r.Use(httprate.LimitByIP(s.rateRequests, s.rateWindow))
		}
		r.Post("/compositions", s.Compose)
		r.Post("/compositions/featured", s.ComposeFeatured)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/compositions", s.History)
			r.Get("/preferences", s.Preferences)
			r.Put("/preferences", s.SavePreferences)
		})
		r.Get("/catalog/{category}", s.Catalog)
	})
	return r
}

// Compose answers with the drink, or with empty lists when no syrup was recognized.
func (s *MixerServer) Compose(w http.ResponseWriter, r *http.Request) {
	var body composeRequest
	if !s.decode(w, r, &body) {
		return
	}
	composition, err := s.mixerService.Compose(r.Context(), domain.ComposeRequest{
		UserID:      body.UserID,
		Preferences: body.Preferences,
		Text:        body.Text,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, toCompositionResponse(composition))
}

func (s *MixerServer) ComposeFeatured(w http.ResponseWriter, r *http.Request) {
	var body featuredRequest
	if !s.decode(w, r, &body) {
		return
	}
	composition, err := s.mixerService.ComposeFeatured(r.Context(), body.UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, toCompositionResponse(composition))
}

func (s *MixerServer) History(w http.ResponseWriter, r *http.Request) {
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	compositions, next, err := s.mixerService.History(r.Context(), chi.URLParam(r, "userID"), cursor)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, historyResponse{
		Compositions: lo.Map(compositions, func(c domain.Composition, _ int) compositionResponse {
			return toCompositionResponse(c)
		}),
		Cursor: next,
	})
}

func (s *MixerServer) Preferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	preferences, err := s.mixerService.Preferences(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, preferencesBody{UserID: userID, Preferences: preferences})
}

// SavePreferences answers with the tokens actually kept.
func (s *MixerServer) SavePreferences(w http.ResponseWriter, r *http.Request) {
	var body preferencesBody
	if !s.decode(w, r, &body) {
		return
	}
	userID := chi.URLParam(r, "userID")
	kept, err := s.mixerService.SavePreferences(r.Context(), userID, body.Preferences)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, preferencesBody{UserID: userID, Preferences: kept})
}

func (s *MixerServer) Catalog(w http.ResponseWriter, r *http.Request) {
	items, err := s.mixerService.Catalog(chi.URLParam(r, "category"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	category, _ := domain.ParseCategory(chi.URLParam(r, "category"))
	s.respond(w, http.StatusOK, catalogResponse{Category: string(category), Items: items})
}

// decode accepts an empty body as the zero value of dst.
func (s *MixerServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return false
	}
	return true
}

func (s *MixerServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	s.respond(w, status, errorResponse{Error: err.Error()})
}

func (s *MixerServer) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("Failed to write response", "error", err)
	}
}

func (s *MixerServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("HTTP request",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func toCompositionResponse(c domain.Composition) compositionResponse {
	response := compositionResponse{
		Syrups: lo.Ternary(c.Syrups == nil, []string{}, c.Syrups),
		Soda:   lo.Ternary(c.Soda == nil, []string{}, c.Soda),
		AddIns: lo.Ternary(c.AddIns == nil, []string{}, c.AddIns),
	}
	if !c.IsEmpty() {
		response.ID = c.ID.String()
		response.CreatedAt = lo.ToPtr(c.CreatedAt)
	}
	return response
}
