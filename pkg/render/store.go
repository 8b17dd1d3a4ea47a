package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SlotPolicy controls how the on-disk copy of the most recent artifact is
// named.
type SlotPolicy string

const (
	// SlotShared keeps one fixed-name file overwritten by every save.
	// Under concurrent callers it is last-write-wins: a best-effort
	// convenience, not a consistent store. The embedded artifact returned
	// to each caller remains authoritative.
	SlotShared SlotPolicy = "shared"

	// SlotPerOperation keys the file by operation name, so saves for
	// different operations never overwrite each other.
	SlotPerOperation SlotPolicy = "per-operation"
)

const sharedSlotName = "latest.png"

// Store persists the most recently produced artifact so a later download
// request can retrieve it.
type Store struct {
	mu     sync.Mutex
	dir    string
	policy SlotPolicy
}

// NewStore creates a store rooted at dir. An unknown policy falls back to
// SlotShared, the original single-slot behavior.
func NewStore(dir string, policy SlotPolicy) *Store {
	if policy != SlotPerOperation {
		policy = SlotShared
	}
	return &Store{dir: dir, policy: policy}
}

// Save writes the artifact's PNG bytes to the slot for op, creating the
// directory if needed, and records the path on the artifact.
func (s *Store) Save(op string, a *Artifact) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := s.slotPath(op)

	// Write to a temp file and rename so readers never observe a torn file.
	tmp, err := os.CreateTemp(s.dir, "artifact-*.png")
	if err != nil {
		return "", fmt.Errorf("create artifact temp file: %w", err)
	}
	if _, err := tmp.Write(a.PNG); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close artifact temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publish artifact: %w", err)
	}

	a.Path = path
	return path, nil
}

// SlotPath returns where the artifact for op lives under the current
// policy, whether or not anything has been saved yet.
func (s *Store) SlotPath(op string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slotPath(op)
}

func (s *Store) slotPath(op string) string {
	if s.policy == SlotPerOperation {
		return filepath.Join(s.dir, op+".png")
	}
	return filepath.Join(s.dir, sharedSlotName)
}
