// Package store keeps worker and task records. Without a data file everything
// lives in memory; with one, each change is written out as a JSON snapshot
// before it becomes visible.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("record not found")

type Worker struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email_address"`
	TaskID    *int   `json:"task_id,omitempty"`
}

type Task struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type state struct {
	LastWorkerID int      `json:"last_worker_id"`
	LastTaskID   int      `json:"last_task_id"`
	Workers      []Worker `json:"workers"`
	Tasks        []Task   `json:"tasks"`
}

func (s state) clone() state {
	s.Workers = slices.Clone(s.Workers)
	s.Tasks = slices.Clone(s.Tasks)
	return s
}

type DB struct {
	mu    sync.Mutex
	path  string
	state state
}

// Open loads the snapshot at path. An empty path gives a memory-only DB, and
// a path that does not exist yet starts empty.
func Open(path string) (*DB, error) {
	db := &DB{path: path}
	if path == "" {
		return db, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &db.state); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return db, nil
}

func NewMemory() *DB {
	return &DB{}
}

func (db *DB) Workers() *Workers {
	return &Workers{db: db}
}

func (db *DB) Tasks() *Tasks {
	return &Tasks{db: db}
}

// commit applies change to a copy of the state, persists the copy and only
// then swaps it in.
func (db *DB) commit(change func(s *state) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	next := db.state.clone()
	if err := change(&next); err != nil {
		return err
	}
	if err := db.persist(next); err != nil {
		return err
	}
	db.state = next
	return nil
}

func (db *DB) read(fn func(s *state)) {
	db.mu.Lock()
	defer db.mu.Unlock()
	fn(&db.state)
}

func (db *DB) persist(s state) error {
	if db.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(db.path), filepath.Base(db.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), db.path); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
