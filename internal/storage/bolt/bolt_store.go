package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brk3/habitcal/internal/storage"
	"github.com/brk3/habitcal/pkg/habit"
	"go.etcd.io/bbolt"
)

const rootBucket = "habitcal"

// habitsKey holds the JSON array of every habit, mirroring the single
// local-storage key the browser front-end uses.
const habitsKey = "habits"

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LoadHabits() ([]habit.Habit, error) {
	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(rootBucket)).Get([]byte(habitsKey))
		if v == nil {
			return storage.ErrNoSnapshot
		}
		// v is only valid inside the transaction.
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []habit.Habit
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode habits snapshot: %w", err)
	}
	return out, nil
}

func (s *Store) SaveHabits(habits []habit.Habit) error {
	if habits == nil {
		habits = []habit.Habit{}
	}
	val, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("encode habits snapshot: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(rootBucket)).Put([]byte(habitsKey), val)
	})
}

var _ storage.Store = (*Store)(nil)
