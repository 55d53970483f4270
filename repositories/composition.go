//go:generate go run go.uber.org/mock/mockgen -source=composition.go -destination=../mocks/mock_composition_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"pop-lab/domain"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type ICompositionRepository interface {
	Store(userID string, composition domain.Composition) error
	List(userID string, cursor *string) ([]domain.Composition, *string, error)
}

type CompositionRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
}

func NewCompositionRepository(db *badger.DB, log *slog.Logger, limit *int) CompositionRepository {
	return CompositionRepository{db: db, log: log, limit: limit}
}

// DiskComposition is the stored shape of a composition.
type DiskComposition struct {
	ID     string   `json:"id"`
	Syrups []string `json:"syrups"`
	Soda   []string `json:"soda"`
	AddIns []string `json:"addins"`
	At     int64    `json:"at"`
}

// Store persists a composition in BadgerDB.
// The key is formatted as "mix:{user_id}:{timestamp_padded}:{uuid}": the 19-digit zero padding keeps
// lexicographical order chronological and the UUID separates two drinks of the same nanosecond.
func (r CompositionRepository) Store(userID string, composition domain.Composition) error {
	key := fmt.Sprintf("mix:%s:%019d:%s",
		userID,
		composition.CreatedAt.UnixNano(),
		composition.ID,
	)
	bytes, err := json.Marshal(fromComposition(composition))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List walks the compositions of a user newest first with a reverse prefix scan.
// The returned cursor is the key suffix of the last composition read; pass it back to get the next page.
func (r CompositionRepository) List(userID string, cursor *string) ([]domain.Composition, *string, error) {
	var raw [][]byte
	var lastKey string
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("mix:%s:", userID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Past the newest possible timestamp, then walk back
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[prefixLen:]) == *cursor {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if r.limit != nil && len(raw) == *r.limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d compositions reached", *r.limit))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	compositions := make([]domain.Composition, 0, len(raw))
	for _, b := range raw {
		composition, err := DecodeComposition(b)
		if err != nil {
			return nil, nil, err
		}
		compositions = append(compositions, composition)
	}
	if len(compositions) == 0 {
		return compositions, nil, nil
	}
	return compositions, &lastKey, nil
}

// DecodeComposition reads a stored value back into a composition.
func DecodeComposition(value []byte) (domain.Composition, error) {
	var disk DiskComposition
	if err := json.Unmarshal(value, &disk); err != nil {
		return domain.Composition{}, err
	}
	return toComposition(disk)
}

func fromComposition(c domain.Composition) DiskComposition {
	return DiskComposition{
		ID:     c.ID.String(),
		Syrups: c.Syrups,
		Soda:   c.Soda,
		AddIns: c.AddIns,
		At:     c.CreatedAt.UnixNano(),
	}
}

func toComposition(disk DiskComposition) (domain.Composition, error) {
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.Composition{}, err
	}
	return domain.Composition{
		ID:        parsedID,
		Syrups:    disk.Syrups,
		Soda:      disk.Soda,
		AddIns:    disk.AddIns,
		CreatedAt: time.Unix(0, disk.At).UTC(),
	}, nil
}
