//go:generate go run go.uber.org/mock/mockgen -source=mixer_service.go -destination=../mocks/mock_mixer_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"pop-lab/domain"
	"pop-lab/errors"
	"pop-lab/extraction"
	"pop-lab/observability"
	"pop-lab/recommender"
	"pop-lab/repositories"
	"slices"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var validate = validator.New()

const userIDRule = "required,max=64,excludes=:"

type IMixerService interface {
	Compose(ctx context.Context, request domain.ComposeRequest) (domain.Composition, error)
	ComposeFeatured(ctx context.Context, userID string) (domain.Composition, error)
	SavePreferences(ctx context.Context, userID string, preferences []string) ([]string, error)
	Preferences(ctx context.Context, userID string) ([]string, error)
	History(ctx context.Context, userID string, cursor *string) ([]domain.Composition, *string, error)
	Catalog(category string) ([]domain.CatalogItem, error)
}

type MixerService struct {
	composer     *recommender.Composer
	catalog      *domain.Catalog
	extractor    *extraction.Extractor
	preferences  repositories.IPreferenceRepository
	compositions repositories.ICompositionRepository
	metrics      *observability.Metrics
	rnd          recommender.RandomSource
	log          *slog.Logger
	now          func() time.Time
}

// NewMixerService wires the composer to storage. rnd picks featured drinks and must be safe
// for concurrent use.
func NewMixerService(
	composer *recommender.Composer,
	catalog *domain.Catalog,
	extractor *extraction.Extractor,
	preferences repositories.IPreferenceRepository,
	compositions repositories.ICompositionRepository,
	metrics *observability.Metrics,
	rnd recommender.RandomSource,
	log *slog.Logger,
) *MixerService {
	return &MixerService{
		composer:     composer,
		catalog:      catalog,
		extractor:    extractor,
		preferences:  preferences,
		compositions: compositions,
		metrics:      metrics,
		rnd:          rnd,
		log:          log,
		now:          time.Now,
	}
}

// Compose merges the explicit preferences with the names found in the free text.
// When both are empty the stored preferences of the user are used instead.
func (s *MixerService) Compose(ctx context.Context, request domain.ComposeRequest) (domain.Composition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Composition{}, err
	}
	if err := validate.Struct(request); err != nil {
		return domain.Composition{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}

	tokens := slices.Clone(request.Preferences)
	if request.Text != "" {
		lang := whatlanggo.Detect(request.Text).Lang.Iso6391()
		s.metrics.RecordText(lang)
		extracted := s.extractor.Extract(request.Text)
		s.log.Debug("Preferences extracted from text", "lang", lang, "found", extracted)
		tokens = append(tokens, extracted...)
	}
	if len(tokens) == 0 {
		stored, err := s.storedPreferences(request.UserID)
		if err != nil {
			return domain.Composition{}, err
		}
		tokens = stored
	}
	return s.compose(request.UserID, tokens)
}

func (s *MixerService) storedPreferences(userID string) ([]string, error) {
	if userID == "" {
		return nil, errors.ErrNoPreferences
	}
	stored, err := s.preferences.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("read preferences of %s: %w", userID, err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: user %s", errors.ErrNoPreferences, userID)
	}
	s.log.Debug("Using stored preferences", "user_id", userID, "count", len(stored))
	return stored, nil
}

// ComposeFeatured seeds a composition with the ingredients of a house recipe drawn at random.
func (s *MixerService) ComposeFeatured(ctx context.Context, userID string) (domain.Composition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Composition{}, err
	}
	if userID != "" {
		if err := validate.Var(userID, userIDRule); err != nil {
			return domain.Composition{}, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
		}
	}
	featured := s.catalog.Featured()
	if len(featured) == 0 {
		return domain.Composition{}, fmt.Errorf("%w: no featured drink", errors.ErrNoPreferences)
	}
	drink := featured[s.rnd.Intn(len(featured))]
	s.log.Debug("Featured drink drawn", "name", drink.Name)
	return s.compose(userID, drink.Ingredients())
}

func (s *MixerService) compose(userID string, tokens []string) (domain.Composition, error) {
	buckets := recommender.Classify(tokens, s.catalog)
	s.metrics.RecordTokens(len(buckets.Syrups), len(buckets.Sodas), len(buckets.AddIns), buckets.Dropped)

	start := time.Now()
	composition, err := s.composer.Compose(tokens)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordComposition(observability.OutcomeFailed, elapsed)
		s.log.Error("Composition failed", "user_id", userID, "error", err)
		return domain.Composition{}, err
	}
	if composition.IsEmpty() {
		s.metrics.RecordComposition(observability.OutcomeEmpty, elapsed)
		return composition, nil
	}

	composition.ID = uuid.New()
	composition.CreatedAt = s.now().UTC()
	s.metrics.RecordComposition(observability.OutcomeComposed, elapsed)

	if userID != "" {
		if err := s.compositions.Store(userID, composition); err != nil {
			return domain.Composition{}, fmt.Errorf("store composition of %s: %w", userID, err)
		}
	}
	s.log.Info("Drink composed",
		"user_id", userID,
		"id", composition.ID,
		"syrups", composition.Syrups,
		"soda", composition.Soda,
		"addins", composition.AddIns,
	)
	return composition, nil
}

// SavePreferences stores only the tokens the catalog recognizes, lowercased, and returns them.
func (s *MixerService) SavePreferences(ctx context.Context, userID string, preferences []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate.Var(userID, userIDRule); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if err := validate.Var(preferences, "max=50,dive,min=1,max=100"); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}

	kept := lo.FilterMap(preferences, func(token string, _ int) (string, bool) {
		name := domain.NormalizeName(token)
		if name == recommender.DietToken {
			return name, true
		}
		return name, lo.SomeBy(domain.Categories, func(c domain.Category) bool {
			return s.catalog.Contains(c, name)
		})
	})
	if err := s.preferences.Save(userID, kept); err != nil {
		return nil, err
	}
	s.log.Debug("Preferences saved", "user_id", userID, "kept", len(kept), "dropped", len(preferences)-len(kept))
	return kept, nil
}

func (s *MixerService) Preferences(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate.Var(userID, userIDRule); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return s.preferences.Get(userID)
}

func (s *MixerService) History(ctx context.Context, userID string, cursor *string) ([]domain.Composition, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := validate.Var(userID, userIDRule); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return s.compositions.List(userID, cursor)
}

func (s *MixerService) Catalog(category string) ([]domain.CatalogItem, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.catalog.Items(c), nil
}
