package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "logic_game_save_"

func slotKey(slot int) []byte {
	return []byte(fmt.Sprintf("%s%d", keyPrefix, slot))
}

// BadgerConfig selects where a BadgerStore keeps its files.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// Logger receives badger's own log lines. Nil silences them.
	Logger *slog.Logger
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerStore keeps slots in an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent save store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create save directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open save store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Save(ctx context.Context, slot int, data SaveData) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode slot %d: %w", slot, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(slotKey(slot), v)
	})
}

func (b *BadgerStore) Load(ctx context.Context, slot int) (SaveData, error) {
	if err := checkSlot(slot); err != nil {
		return SaveData{}, err
	}
	if err := ctx.Err(); err != nil {
		return SaveData{}, err
	}

	var data SaveData
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slotKey(slot))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &data)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return SaveData{}, fmt.Errorf("slot %d: %w", slot, ErrNotFound)
	}
	if err != nil {
		return SaveData{}, fmt.Errorf("failed to load slot %d: %w", slot, err)
	}
	return data, nil
}

func (b *BadgerStore) Exists(ctx context.Context, slot int) (bool, error) {
	if err := checkSlot(slot); err != nil {
		return false, err
	}
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(slotKey(slot))
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	}
	return false, err
}

// Slots lists the slots that hold a save, in ascending order.
func (b *BadgerStore) Slots(ctx context.Context) ([]int, error) {
	var out []int
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var slot int
			if _, err := fmt.Sscanf(string(it.Item().Key()), keyPrefix+"%d", &slot); err == nil {
				out = append(out, slot)
			}
		}
		return nil
	})
	sort.Ints(out)
	return out, err
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
