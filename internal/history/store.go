package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"marquee/internal/domain"
)

var bucketHistory = []byte("history")

// Store implements domain.HistoryStore using BoltDB. An empty directory
// selects memory-only mode (no persistence), which is also what the tests of
// higher layers use.
type Store struct {
	db *bolt.DB

	mu  sync.RWMutex
	mem map[int]domain.WatchRecord // memory-only mode
}

// NewStore opens (or creates) the watch-history database under dir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return &Store{mem: make(map[int]domain.WatchRecord)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordView upserts the entry for a title. Re-watching a title refreshes its
// timestamp instead of duplicating the row.
func (s *Store) RecordView(rec domain.WatchRecord) error {
	if rec.ViewedAt.IsZero() {
		rec.ViewedAt = time.Now()
	}

	if s.db == nil {
		s.mu.Lock()
		s.mem[rec.ID] = rec
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		return b.Put(key(rec.ID), data)
	})
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) Recent(limit int) ([]domain.WatchRecord, error) {
	var recs []domain.WatchRecord

	if s.db == nil {
		s.mu.RLock()
		for _, rec := range s.mem {
			recs = append(recs, rec)
		}
		s.mu.RUnlock()
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketHistory)
			if b == nil {
				return nil
			}
			return b.ForEach(func(_, v []byte) error {
				var rec domain.WatchRecord
				if err := json.Unmarshal(v, &rec); err != nil {
					return err
				}
				recs = append(recs, rec)
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].ViewedAt.After(recs[j].ViewedAt)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Remove deletes the entry for a title. Removing an absent title is a no-op.
func (s *Store) Remove(movieID int) error {
	if s.db == nil {
		s.mu.Lock()
		delete(s.mem, movieID)
		s.mu.Unlock()
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		return b.Delete(key(movieID))
	})
}

// Clear deletes all entries.
func (s *Store) Clear() error {
	if s.db == nil {
		s.mu.Lock()
		s.mem = make(map[int]domain.WatchRecord)
		s.mu.Unlock()
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketHistory); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketHistory)
		return err
	})
}

func key(movieID int) []byte {
	return []byte(strconv.Itoa(movieID))
}
