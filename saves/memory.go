package saves

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps slots in process memory. Documents are stored encoded
// so that callers never share maps with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[int][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[int][]byte{}}
}

func (m *MemoryStore) Save(ctx context.Context, slot int, data SaveData) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode slot %d: %w", slot, err)
	}
	m.mu.Lock()
	m.slots[slot] = b
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, slot int) (SaveData, error) {
	if err := checkSlot(slot); err != nil {
		return SaveData{}, err
	}
	m.mu.RLock()
	b, ok := m.slots[slot]
	m.mu.RUnlock()
	if !ok {
		return SaveData{}, fmt.Errorf("slot %d: %w", slot, ErrNotFound)
	}

	var data SaveData
	if err := json.Unmarshal(b, &data); err != nil {
		return SaveData{}, fmt.Errorf("failed to decode slot %d: %w", slot, err)
	}
	return data, nil
}

func (m *MemoryStore) Exists(ctx context.Context, slot int) (bool, error) {
	if err := checkSlot(slot); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slots[slot]
	return ok, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
