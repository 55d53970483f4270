package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"pop-lab/domain"
	"pop-lab/errors"
	"pop-lab/mocks"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockIMixerService, *prometheus.Registry) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mixerService := mocks.NewMockIMixerService(ctrl)
	reg := prometheus.NewRegistry()
	server := NewMixerServer(logs.GetLoggerFromLevel(slog.LevelDebug), mixerService, reg)
	return server.Routes(), mixerService, reg
}

func do(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMixerServer_Compose(t *testing.T) {
	t.Run("should return the composed drink", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		id := uuid.New()
		at := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
		mixerService.EXPECT().
			Compose(gomock.Any(), domain.ComposeRequest{UserID: "alice", Preferences: []string{"mango"}, Text: "and a coke"}).
			Return(domain.Composition{
				ID:        id,
				Syrups:    []string{"mango", "peach"},
				Soda:      []string{"coke"},
				AddIns:    []string{"whip"},
				CreatedAt: at,
			}, nil).
			Times(1)

		rec := do(router, http.MethodPost, "/api/v1/compositions",
			`{"user_id":"alice","preferences":["mango"],"text":"and a coke"}`)

		req.Equal(http.StatusOK, rec.Code)
		req.Equal("application/json", rec.Header().Get("Content-Type"))
		var got compositionResponse
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		req.Equal(id.String(), got.ID)
		req.Equal([]string{"mango", "peach"}, got.Syrups)
		req.Equal([]string{"coke"}, got.Soda)
		req.Equal([]string{"whip"}, got.AddIns)
		req.NotNil(got.CreatedAt)
		req.True(at.Equal(*got.CreatedAt))
	})

	t.Run("should return empty lists when no syrup is recognized", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		mixerService.EXPECT().Compose(gomock.Any(), gomock.Any()).Return(domain.EmptyComposition(), nil).Times(1)

		rec := do(router, http.MethodPost, "/api/v1/compositions", `{"preferences":["coke"]}`)

		req.Equal(http.StatusOK, rec.Code)
		req.JSONEq(`{"syrups":[],"soda":[],"addins":[]}`, rec.Body.String())
	})

	t.Run("should reject a malformed body without calling the service", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		mixerService.EXPECT().Compose(gomock.Any(), gomock.Any()).Times(0)

		rec := do(router, http.MethodPost, "/api/v1/compositions", `{"preferences":`)

		req.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestMixerServer_Compose_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Invalid request", fmt.Errorf("%w: too many preferences", errors.ErrInvalidRequest), http.StatusBadRequest},
		{"No preferences", errors.ErrNoPreferences, http.StatusNotFound},
		{"Composition failure", fmt.Errorf("%w: soda preferences", errors.ErrCatalogInconsistency), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			router, mixerService, _ := newTestRouter(t)
			mixerService.EXPECT().Compose(gomock.Any(), gomock.Any()).Return(domain.Composition{}, tt.err).Times(1)

			rec := do(router, http.MethodPost, "/api/v1/compositions", `{"user_id":"alice"}`)

			req.Equal(tt.expected, rec.Code)
			var body errorResponse
			req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			req.Equal(tt.err.Error(), body.Error)
		})
	}
}

func TestMixerServer_ComposeFeatured(t *testing.T) {
	req := require.New(t)
	router, mixerService, _ := newTestRouter(t)
	mixerService.EXPECT().
		ComposeFeatured(gomock.Any(), "").
		Return(domain.Composition{ID: uuid.New(), Syrups: []string{"vanilla", "vanilla"}, Soda: []string{"coke"}, AddIns: []string{}}, nil).
		Times(1)

	rec := do(router, http.MethodPost, "/api/v1/compositions/featured", "")

	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), `"soda":["coke"]`)
}

func TestMixerServer_History(t *testing.T) {
	req := require.New(t)
	router, mixerService, _ := newTestRouter(t)
	cursor := "1760520600000000000:abc"
	next := "1760520500000000000:def"
	mixerService.EXPECT().
		History(gomock.Any(), "alice", &cursor).
		Return([]domain.Composition{{ID: uuid.New(), Syrups: []string{"mango", "mango"}, Soda: []string{"fanta"}, AddIns: []string{}}}, &next, nil).
		Times(1)

	rec := do(router, http.MethodGet, "/api/v1/users/alice/compositions?cursor="+cursor, "")

	req.Equal(http.StatusOK, rec.Code)
	var got historyResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.Len(got.Compositions, 1)
	req.Equal(&next, got.Cursor)
}

func TestMixerServer_History_FirstPage(t *testing.T) {
	req := require.New(t)
	router, mixerService, _ := newTestRouter(t)
	mixerService.EXPECT().History(gomock.Any(), "alice", (*string)(nil)).Return([]domain.Composition{}, nil, nil).Times(1)

	rec := do(router, http.MethodGet, "/api/v1/users/alice/compositions", "")

	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"compositions":[]}`, rec.Body.String())
}

func TestMixerServer_Preferences(t *testing.T) {
	t.Run("should save and return the kept tokens", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		mixerService.EXPECT().
			SavePreferences(gomock.Any(), "alice", []string{"Mango", "espresso"}).
			Return([]string{"mango"}, nil).
			Times(1)

		rec := do(router, http.MethodPut, "/api/v1/users/alice/preferences", `{"preferences":["Mango","espresso"]}`)

		req.Equal(http.StatusOK, rec.Code)
		req.JSONEq(`{"user_id":"alice","preferences":["mango"]}`, rec.Body.String())
	})

	t.Run("should read stored preferences", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		mixerService.EXPECT().Preferences(gomock.Any(), "alice").Return([]string{"mango", "diet"}, nil).Times(1)

		rec := do(router, http.MethodGet, "/api/v1/users/alice/preferences", "")

		req.Equal(http.StatusOK, rec.Code)
		req.JSONEq(`{"user_id":"alice","preferences":["mango","diet"]}`, rec.Body.String())
	})
}

func TestMixerServer_Catalog(t *testing.T) {
	t.Run("should list a category", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		mixerService.EXPECT().
			Catalog("sodas").
			Return([]domain.CatalogItem{{Name: "coke", Type: "cola", Calorie: domain.Regular}}, nil).
			Times(1)

		rec := do(router, http.MethodGet, "/api/v1/catalog/sodas", "")

		req.Equal(http.StatusOK, rec.Code)
		var got catalogResponse
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		req.Equal("soda", got.Category)
		req.Len(got.Items, 1)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		req := require.New(t)
		router, mixerService, _ := newTestRouter(t)
		mixerService.EXPECT().Catalog("snacks").Return(nil, errors.ErrUnknownCategory).Times(1)

		rec := do(router, http.MethodGet, "/api/v1/catalog/snacks", "")

		req.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestMixerServer_Probes(t *testing.T) {
	req := require.New(t)
	router, _, reg := newTestRouter(t)
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "poplab_probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	req.Equal(http.StatusOK, do(router, http.MethodGet, "/healthz", "").Code)

	rec := do(router, http.MethodGet, "/metrics", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), "poplab_probe_total 1")
}

func TestMixerServer_RateLimit(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mixerService := mocks.NewMockIMixerService(ctrl)
	mixerService.EXPECT().Preferences(gomock.Any(), "alice").Return([]string{"mango"}, nil).Times(1)
	router := NewMixerServer(slog.Default(), mixerService, prometheus.NewRegistry()).
		WithRateLimit(1, time.Minute).
		Routes()

	req.Equal(http.StatusOK, do(router, http.MethodGet, "/api/v1/users/alice/preferences", "").Code)
	req.Equal(http.StatusTooManyRequests, do(router, http.MethodGet, "/api/v1/users/alice/preferences", "").Code)
	req.Equal(http.StatusOK, do(router, http.MethodGet, "/healthz", "").Code)
}
