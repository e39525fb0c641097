// Package saves keeps player progress in numbered save slots. Slot 1 doubles
// as the auto-save slot.
package saves

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hilbert-circuits/board"
)

// AutoSaveSlot is written on every board change and read on "continue".
const AutoSaveSlot = 1

var (
	ErrNotFound    = errors.New("save slot is empty")
	ErrInvalidSlot = errors.New("invalid save slot")
)

// LevelState is the board of one level as the player left it.
type LevelState struct {
	Components []board.Component `json:"components"`
}

// SaveData is the document stored in a slot. Timestamp is in milliseconds
// since the Unix epoch.
type SaveData struct {
	Timestamp   int64              `json:"timestamp"`
	LevelIndex  int                `json:"levelIndex"`
	LevelStates map[int]LevelState `json:"levelStates"`
}

func (d SaveData) Time() time.Time {
	return time.UnixMilli(d.Timestamp)
}

// Info is what a load menu shows for a slot.
type Info struct {
	Timestamp  int64 `json:"timestamp"`
	LevelIndex int   `json:"levelIndex"`
}

// Store persists save slots. Load returns ErrNotFound for an empty slot.
type Store interface {
	Save(ctx context.Context, slot int, data SaveData) error
	Load(ctx context.Context, slot int) (SaveData, error)
	Exists(ctx context.Context, slot int) (bool, error)
	Close() error
}

func checkSlot(slot int) error {
	if slot < 0 {
		return fmt.Errorf("%w %d", ErrInvalidSlot, slot)
	}
	return nil
}

func AutoSave(ctx context.Context, s Store, data SaveData) error {
	return s.Save(ctx, AutoSaveSlot, data)
}

func LoadAutoSave(ctx context.Context, s Store) (SaveData, error) {
	return s.Load(ctx, AutoSaveSlot)
}

func HasAutoSave(ctx context.Context, s Store) (bool, error) {
	return s.Exists(ctx, AutoSaveSlot)
}

// SlotInfo summarises a slot without its boards.
func SlotInfo(ctx context.Context, s Store, slot int) (Info, error) {
	data, err := s.Load(ctx, slot)
	if err != nil {
		return Info{}, err
	}
	return Info{Timestamp: data.Timestamp, LevelIndex: data.LevelIndex}, nil
}

// Record merges the board of level into the auto-save, keeping the boards
// of every other level, and makes level the current one.
func Record(ctx context.Context, s Store, level int, state LevelState, now time.Time) error {
	data, err := LoadAutoSave(ctx, s)
	if errors.Is(err, ErrNotFound) {
		data = SaveData{}
	} else if err != nil {
		return err
	}
	if data.LevelStates == nil {
		data.LevelStates = map[int]LevelState{}
	}
	data.Timestamp = now.UnixMilli()
	data.LevelIndex = level
	data.LevelStates[level] = state
	return AutoSave(ctx, s, data)
}

// Reset starts a new game in the auto-save slot.
func Reset(ctx context.Context, s Store, now time.Time) error {
	return AutoSave(ctx, s, SaveData{Timestamp: now.UnixMilli(), LevelStates: map[int]LevelState{}})
}
