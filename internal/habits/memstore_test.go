package habits

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/brk3/habitcal/internal/storage"
	"github.com/brk3/habitcal/pkg/habit"
)

// memStore keeps the snapshot as JSON so tests see the same round trip the
// bolt store performs.
type memStore struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) LoadHabits() ([]habit.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, storage.ErrNoSnapshot
	}
	var out []habit.Habit
	if err := json.Unmarshal(m.data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *memStore) SaveHabits(hs []habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(hs)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

func (m *memStore) snapshot() []habit.Habit {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []habit.Habit
	_ = json.Unmarshal(m.data, &out)
	return out
}

func (m *memStore) Close() error {
	return nil
}

var errQuota = errors.New("quota exceeded")

var _ storage.Store = (*memStore)(nil)
