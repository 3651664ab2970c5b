// Package session persists the working set of a Medistock session: the
// inventory list and the sales ledger, serialized as flat records to a JSON
// snapshot after every mutation and rehydrated at startup. When no snapshot
// exists the store starts from the seed fixtures.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const snapshotFile = "session.json"

// ItemRecord is the serialized form of an inventory item.
type ItemRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// SaleRecord is the serialized form of a ledger entry. ItemName is a snapshot
// of the item's name at sale time, not a join against the inventory.
type SaleRecord struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Data is the full session state. Slice order is canonical: the sales slice
// preserves ledger insertion order.
type Data struct {
	Items []ItemRecord `json:"items"`
	Sales []SaleRecord `json:"sales"`
}

// Store guards the session state behind a single lock so that cross-collection
// mutations (a sale appending to the ledger while decrementing stock) are
// observed as one unit by every reader.
type Store struct {
	mu   sync.RWMutex
	data Data
	path string
}

// Open loads the snapshot under dir, falling back to seed(). The directory is
// created if missing so the first mutation can persist.
func Open(dir string, seed func() Data) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	s := &Store{path: filepath.Join(dir, snapshotFile)}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}

		if seed != nil {
			s.data = seed()
		}

		return s, nil
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return s, nil
}

// View runs fn with read access to the current state.
func (s *Store) View(fn func(data *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn(&s.data)
}

// Update runs fn with exclusive access and persists the snapshot when fn
// succeeds. When fn returns an error the state is restored untouched, so a
// mutation either applies fully or not at all.
func (s *Store) Update(fn func(data *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.data.clone()

	if err := fn(&s.data); err != nil {
		s.data = before
		return err
	}

	if err := s.persist(); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}

	return nil
}

func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never truncates the snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func (d Data) clone() Data {
	out := Data{
		Items: make([]ItemRecord, len(d.Items)),
		Sales: make([]SaleRecord, len(d.Sales)),
	}
	copy(out.Items, d.Items)
	copy(out.Sales, d.Sales)

	return out
}
