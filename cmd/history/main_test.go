package main

import (
	"bytes"
	"log/slog"
	"pop-lab/domain"
	"pop-lab/repositories"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := repositories.NewCompositionRepository(db, slog.Default(), nil)
	at := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	req.NoError(repository.Store("alice", domain.Composition{
		ID: uuid.New(), Syrups: []string{"mango", "peach"}, Soda: []string{"sprite"}, AddIns: []string{"whip"}, CreatedAt: at,
	}))
	req.NoError(repository.Store("bob", domain.Composition{
		ID: uuid.New(), Syrups: []string{"vanilla", "vanilla"}, Soda: []string{"coke"}, AddIns: []string{}, CreatedAt: at,
	}))
	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("pref:alice"), []byte(`["mango"]`))
	}))

	t.Run("should list every user", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, inspect(&out, db, ""))
		require.Contains(t, out.String(), "mango + peach")
		require.Contains(t, out.String(), "vanilla + vanilla")
		require.NotContains(t, out.String(), "pref:")
	})

	t.Run("should filter one user", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, inspect(&out, db, "bob"))
		require.Contains(t, out.String(), "coke")
		require.NotContains(t, out.String(), "sprite")
	})
}
