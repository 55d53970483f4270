//go:generate go run go.uber.org/mock/mockgen -source=preference.go -destination=../mocks/mock_preference_repository.go -package=mocks
package repositories

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

type IPreferenceRepository interface {
	Save(userID string, preferences []string) error
	Get(userID string) ([]string, error)
}

type PreferenceRepository struct {
	db *badger.DB
}

func NewPreferenceRepository(db *badger.DB) IPreferenceRepository {
	return &PreferenceRepository{db: db}
}

func preferenceKey(userID string) []byte {
	return []byte("pref:" + userID)
}

// Save replaces the stored preferences of a user.
func (p PreferenceRepository) Save(userID string, preferences []string) error {
	if preferences == nil {
		preferences = []string{}
	}
	data, err := json.Marshal(preferences)
	if err != nil {
		return err
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(preferenceKey(userID), data)
	})
}

// Get returns an empty slice for a user that never saved anything.
func (p PreferenceRepository) Get(userID string) ([]string, error) {
	preferences := []string{}
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(preferenceKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &preferences)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return preferences, nil
}
