// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package history

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run ID is not in the archive.
var ErrRunNotFound = errors.New("run not found")

// Store is a BadgerDB-backed archive of diagnostic runs.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens the run archive at the given directory, creating it if needed.
func Open(filePath string) (*Store, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filePath, 0755); err != nil {
				return nil, err
			}
			info, err = os.Stat(filePath)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filePath)
	}
	return open(badger.DefaultOptions(filePath))
}

// OpenInMemory opens a transient archive with no disk footprint.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	logger := slog.Default().With("component", "history")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun archives a run. A missing ID is assigned; the ID is returned.
func (s *Store) SaveRun(record *Record) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	data, err := marshalRecord(record)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(tx *badger.Txn) error {
		if err := tx.Set(makeRunKey(record.ID), data); err != nil {
			return err
		}
		// Date index entry carries no value; the suffix holds the ID.
		return tx.Set(makeRunDateKey(record.StartedAt, record.ID), []byte(record.ID))
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("run archived", "id", record.ID, "query", record.Query)
	return record.ID, nil
}

// GetRun retrieves one archived run by ID.
func (s *Store) GetRun(id string) (*Record, error) {
	var record *Record
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRunNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = unmarshalRecord(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRuns returns up to limit archived runs, newest first. A limit of 0
// returns everything.
func (s *Store) ListRuns(limit int) ([]*Record, error) {
	var ids []string
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runDatePrefix + ":")
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse iteration needs a seek key past the whole prefix range.
		seek := append([]byte(runDatePrefix+":"), 0xff)
		for iter.Seek(seek); iter.Valid(); iter.Next() {
			if limit > 0 && len(ids) >= limit {
				break
			}
			err := iter.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetRun(id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
