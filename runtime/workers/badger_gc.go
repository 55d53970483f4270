package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gcDiscardRatio = 0.5

// BadgerGCWorker reclaims value-log space on a fixed interval.
type BadgerGCWorker struct {
	log      *slog.Logger
	db       *badger.DB
	interval time.Duration
}

func NewBadgerGCWorker(log *slog.Logger, db *badger.DB, interval time.Duration) *BadgerGCWorker {
	return &BadgerGCWorker{log: log, db: db, interval: interval}
}

func (w *BadgerGCWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping value log GC")
			return nil
		case <-ticker.C:
			rewrites, err := w.collect()
			if err != nil {
				return err
			}
			w.log.Debug("Value log GC pass", "rewrites", rewrites)
		}
	}
}

// collect runs GC until Badger reports nothing left to rewrite.
func (w *BadgerGCWorker) collect() (int, error) {
	rewrites := 0
	for {
		err := w.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewrites++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			return rewrites, nil
		default:
			return rewrites, err
		}
	}
}
