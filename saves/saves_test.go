package saves

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hilbert-circuits/board"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	b, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": b,
	}
}

func sample() SaveData {
	return SaveData{
		Timestamp:  1700000000000,
		LevelIndex: 2,
		LevelStates: map[int]LevelState{
			2: {Components: []board.Component{
				{ID: "p", Kind: board.Atom, Name: "P", X: -15, Y: -3, W: 4, H: 4},
				{ID: "w", Kind: board.Wire, X: -11, Y: -1, W: 2, H: 1, Signal: board.Provable},
			}},
		},
	}
}

func TestSlots(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := s.Exists(ctx, 3)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = s.Load(ctx, 3)
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, s.Save(ctx, 3, sample()))
			ok, err = s.Exists(ctx, 3)
			require.NoError(t, err)
			assert.True(t, ok)

			got, err := s.Load(ctx, 3)
			require.NoError(t, err)
			assert.Equal(t, sample(), got)

			info, err := SlotInfo(ctx, s, 3)
			require.NoError(t, err)
			assert.Equal(t, Info{Timestamp: 1700000000000, LevelIndex: 2}, info)

			assert.True(t, errors.Is(s.Save(ctx, -1, sample()), ErrInvalidSlot))
		})
	}
}

func TestAutoSave(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1700000000000)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := HasAutoSave(ctx, s)
			require.NoError(t, err)
			assert.False(t, ok)

			first := LevelState{Components: []board.Component{{ID: "a", Kind: board.Atom, Name: "P", W: 4, H: 4}}}
			second := LevelState{Components: []board.Component{{ID: "n", Kind: board.NotGate, W: 4, H: 4}}}
			require.NoError(t, Record(ctx, s, 0, first, now))
			require.NoError(t, Record(ctx, s, 1, second, now.Add(time.Second)))

			data, err := s.Load(ctx, AutoSaveSlot)
			require.NoError(t, err)
			assert.Equal(t, 1, data.LevelIndex)
			assert.Equal(t, now.Add(time.Second), data.Time())
			assert.Equal(t, first, data.LevelStates[0])
			assert.Equal(t, second, data.LevelStates[1])

			require.NoError(t, Reset(ctx, s, now))
			data, err = LoadAutoSave(ctx, s)
			require.NoError(t, err)
			assert.Empty(t, data.LevelStates)
			assert.Equal(t, 0, data.LevelIndex)
		})
	}
}

func TestBadgerPersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, 2, sample()))
	require.NoError(t, s.Save(ctx, 10, sample()))
	require.NoError(t, s.Close())

	s, err = OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	slots, err := s.Slots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10}, slots)

	_, err = OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}
