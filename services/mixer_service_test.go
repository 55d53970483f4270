package services

import (
	"context"
	"fmt"
	"log/slog"
	"pop-lab/catalog"
	"pop-lab/domain"
	"pop-lab/errors"
	"pop-lab/extraction"
	"pop-lab/mocks"
	"pop-lab/observability"
	"pop-lab/recommender"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc          *MixerService
	preferences  *mocks.MockIPreferenceRepository
	compositions *mocks.MockICompositionRepository
	metrics      *observability.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	c, err := catalog.LoadDefault()
	require.NoError(t, err)
	rnd := recommender.NewLockedSource(recommender.NewSeededSource(7))
	composer, err := recommender.NewComposer(c, rnd, log)
	require.NoError(t, err)
	var names []string
	for _, category := range domain.Categories {
		names = append(names, c.Names(category)...)
	}
	extractor, err := extraction.NewExtractor(append(names, recommender.DietToken))
	require.NoError(t, err)

	f := fixture{
		preferences:  mocks.NewMockIPreferenceRepository(ctrl),
		compositions: mocks.NewMockICompositionRepository(ctrl),
		metrics:      observability.NewMetrics(prometheus.NewRegistry()),
	}
	f.svc = NewMixerService(composer, c, extractor, f.preferences, f.compositions, f.metrics, rnd, log)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestMixerService_Compose(t *testing.T) {
	t.Run("should compose and store the drink of a known user", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		var stored domain.Composition
		f.compositions.EXPECT().
			Store("alice", gomock.Any()).
			DoAndReturn(func(_ string, c domain.Composition) error {
				stored = c
				return nil
			}).
			Times(1)

		composition, err := f.svc.Compose(context.Background(), domain.ComposeRequest{
			UserID:      "alice",
			Preferences: []string{"Mango", "Sprite"},
		})

		req.NoError(err)
		req.NotEqual(uuid.Nil, composition.ID)
		req.Equal(fixedNow, composition.CreatedAt)
		req.Equal([]string{"sprite"}, composition.Soda)
		req.Equal(stored, composition)
		req.Equal(1.0, testutil.ToFloat64(f.metrics.Compositions.WithLabelValues("composed")))
		req.Equal(1.0, testutil.ToFloat64(f.metrics.PreferenceTokens.WithLabelValues("soda")))
	})

	t.Run("should extract preferences from free text", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.compositions.EXPECT().Store("bob", gomock.Any()).Return(nil).Times(1)

		composition, err := f.svc.Compose(context.Background(), domain.ComposeRequest{
			UserID: "bob",
			Text:   "Something with Coconut and a Dr. Pepper please",
		})

		req.NoError(err)
		req.Equal([]string{"dr. pepper"}, composition.Soda)
		req.Len(composition.Syrups, 2)
		req.Equal(1, testutil.CollectAndCount(f.metrics.TextRequests))
	})

	t.Run("should fall back to stored preferences", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.preferences.EXPECT().Get("carol").Return([]string{"vanilla", "coke"}, nil).Times(1)
		f.compositions.EXPECT().Store("carol", gomock.Any()).Return(nil).Times(1)

		composition, err := f.svc.Compose(context.Background(), domain.ComposeRequest{UserID: "carol"})

		req.NoError(err)
		req.Equal([]string{"coke"}, composition.Soda)
	})

	t.Run("should fail when nothing is stored either", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.preferences.EXPECT().Get("dave").Return([]string{}, nil).Times(1)
		f.compositions.EXPECT().Store(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Compose(context.Background(), domain.ComposeRequest{UserID: "dave"})

		req.ErrorIs(err, errors.ErrNoPreferences)
	})

	t.Run("should fail for an anonymous request without preferences", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.preferences.EXPECT().Get(gomock.Any()).Times(0)

		_, err := f.svc.Compose(context.Background(), domain.ComposeRequest{Text: "nothing on the menu"})

		req.ErrorIs(err, errors.ErrNoPreferences)
	})

	t.Run("should return the empty composition without storing it", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.compositions.EXPECT().Store(gomock.Any(), gomock.Any()).Times(0)

		composition, err := f.svc.Compose(context.Background(), domain.ComposeRequest{
			UserID:      "erin",
			Preferences: []string{"coke", "whip", "espresso"},
		})

		req.NoError(err)
		req.Equal(domain.EmptyComposition(), composition)
		req.Equal(1.0, testutil.ToFloat64(f.metrics.Compositions.WithLabelValues("empty")))
		req.Equal(1.0, testutil.ToFloat64(f.metrics.PreferenceTokens.WithLabelValues("dropped")))
	})

	t.Run("should not store the drink of an anonymous user", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.compositions.EXPECT().Store(gomock.Any(), gomock.Any()).Times(0)

		composition, err := f.svc.Compose(context.Background(), domain.ComposeRequest{Preferences: []string{"peach"}})

		req.NoError(err)
		req.False(composition.IsEmpty())
	})

	t.Run("should propagate storage failures", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		boom := fmt.Errorf("disk full")
		f.compositions.EXPECT().Store("frank", gomock.Any()).Return(boom).Times(1)

		_, err := f.svc.Compose(context.Background(), domain.ComposeRequest{
			UserID:      "frank",
			Preferences: []string{"peach"},
		})

		req.ErrorIs(err, boom)
	})

	t.Run("should reject a canceled context", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.svc.Compose(ctx, domain.ComposeRequest{Preferences: []string{"peach"}})

		req.ErrorIs(err, context.Canceled)
	})
}

func TestMixerService_Compose_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request domain.ComposeRequest
	}{
		{"Too many preferences", domain.ComposeRequest{Preferences: make([]string, 51)}},
		{"Empty preference", domain.ComposeRequest{Preferences: []string{"mango", ""}}},
		{"Preference too long", domain.ComposeRequest{Preferences: []string{strings.Repeat("a", 101)}}},
		{"Text too long", domain.ComposeRequest{Text: strings.Repeat("mango ", 200)}},
		{"User id with a key separator", domain.ComposeRequest{UserID: "a:b", Preferences: []string{"mango"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Compose(context.Background(), tt.request)
			require.ErrorIs(t, err, errors.ErrInvalidRequest)
		})
	}
}

func TestMixerService_ComposeFeatured(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.compositions.EXPECT().Store("alice", gomock.Any()).Return(nil).Times(1)

	composition, err := f.svc.ComposeFeatured(context.Background(), "alice")

	req.NoError(err)
	req.False(composition.IsEmpty())
	req.Len(composition.Soda, 1)
}

func TestMixerService_SavePreferences(t *testing.T) {
	t.Run("should keep only catalog tokens and the diet flag", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		expected := []string{"mango", "diet", "coke", "whip"}
		f.preferences.EXPECT().Save("alice", expected).Return(nil).Times(1)

		kept, err := f.svc.SavePreferences(context.Background(), "alice", []string{"Mango", "espresso", "DIET", " Coke ", "whip"})

		req.NoError(err)
		req.Equal(expected, kept)
	})

	t.Run("should require a user id", func(t *testing.T) {
		f := newFixture(t)
		f.preferences.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.SavePreferences(context.Background(), "", []string{"mango"})

		require.ErrorIs(t, err, errors.ErrInvalidRequest)
	})
}

func TestMixerService_Preferences(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.preferences.EXPECT().Get("alice").Return([]string{"mango"}, nil).Times(1)

	prefs, err := f.svc.Preferences(context.Background(), "alice")

	req.NoError(err)
	req.Equal([]string{"mango"}, prefs)
}

func TestMixerService_History(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	cursor := "1760520600000000000:abc"
	page := []domain.Composition{{ID: uuid.New(), Syrups: []string{"mango", "mango"}, Soda: []string{"coke"}, AddIns: []string{}}}
	next := "1760520500000000000:def"
	f.compositions.EXPECT().List("alice", &cursor).Return(page, &next, nil).Times(1)

	got, gotNext, err := f.svc.History(context.Background(), "alice", &cursor)

	req.NoError(err)
	req.Equal(page, got)
	req.Equal(&next, gotNext)
}

func TestMixerService_Catalog(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	sodas, err := f.svc.Catalog("Sodas")
	req.NoError(err)
	req.Len(sodas, 19)

	_, err = f.svc.Catalog("snacks")
	req.ErrorIs(err, errors.ErrUnknownCategory)
}
