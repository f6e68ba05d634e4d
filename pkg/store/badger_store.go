package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// Validate that BadgerStore implements the Store interface
var _ Store = &BadgerStore{}

const (
	runKeyPrefix     = "run/"
	counterKeyPrefix = "buildnum/"
)

// BadgerStore implements the Store interface using BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	path   string
	logger log.Logger
}

// NewBadgerStore creates a new BadgerDB-backed store.
func NewBadgerStore(logger log.Logger) *BadgerStore {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &BadgerStore{logger: logger.WithComponent("store")}
}

// Open opens the BadgerDB database at path.
func (s *BadgerStore) Open(path string) error {
	s.path = path

	opts := badger.DefaultOptions(path)
	opts.Logger = &badgerLogAdapter{logger: s.logger}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger db: %w", err)
	}
	s.db = db

	s.logger.Debug("Store opened", log.Str("path", path))
	return nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Debug("Closing store", log.Str("path", s.path))
	return s.db.Close()
}

// SaveRun appends a run record.
func (s *BadgerStore) SaveRun(ctx context.Context, record *types.RunRecord) error {
	if record.ID == "" {
		return fmt.Errorf("run record has no id")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize run record: %w", err)
	}

	key := []byte(runKeyPrefix + record.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("run %s already recorded", record.ID)
		} else if err != badger.ErrKeyNotFound {
			return fmt.Errorf("failed to check existing run: %w", err)
		}
		return txn.Set(key, data)
	})
}

// GetRun retrieves a run record by id.
func (s *BadgerStore) GetRun(ctx context.Context, id string) (*types.RunRecord, error) {
	var record types.RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(runKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrRunNotFound
		} else if err != nil {
			return fmt.Errorf("failed to read run: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRuns lists run records, newest first.
func (s *BadgerStore) ListRuns(ctx context.Context, bundleID string) ([]types.RunRecord, error) {
	var records []types.RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(runKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record types.RunRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return fmt.Errorf("failed to decode run %s: %w",
					strings.TrimPrefix(string(it.Item().Key()), runKeyPrefix), err)
			}
			if bundleID == "" || record.BundleID == bundleID {
				records = append(records, record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}

// NextBuildNumber increments and returns the build counter for the bundle.
func (s *BadgerStore) NextBuildNumber(ctx context.Context, bundleID string) (int64, error) {
	key := []byte(counterKeyPrefix + bundleID)

	var next int64
	err := s.db.Update(func(txn *badger.Txn) error {
		var current int64
		item, err := txn.Get(key)
		if err == nil {
			if err := item.Value(func(val []byte) error {
				if len(val) != 8 {
					return fmt.Errorf("corrupt counter for %s", bundleID)
				}
				current = int64(binary.BigEndian.Uint64(val))
				return nil
			}); err != nil {
				return err
			}
		} else if err != badger.ErrKeyNotFound {
			return fmt.Errorf("failed to read counter: %w", err)
		}

		next = current + 1
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(next))
		return txn.Set(key, buf)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("Advanced build counter",
		log.Str("bundle_id", bundleID), log.Int64("build_number", next))
	return next, nil
}

// badgerLogAdapter routes badger's internal logging into ours.
type badgerLogAdapter struct {
	logger log.Logger
}

func (a *badgerLogAdapter) Errorf(format string, args ...interface{}) {
	a.logger.Error(fmt.Sprintf(strings.TrimSpace(format), args...))
}

func (a *badgerLogAdapter) Warningf(format string, args ...interface{}) {
	a.logger.Warn(fmt.Sprintf(strings.TrimSpace(format), args...))
}

func (a *badgerLogAdapter) Infof(format string, args ...interface{}) {
	a.logger.Debug(fmt.Sprintf(strings.TrimSpace(format), args...))
}

func (a *badgerLogAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug(fmt.Sprintf(strings.TrimSpace(format), args...))
}
