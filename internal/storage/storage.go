// Package storage persists the optional snapshot journal. A merge run
// only writes here when the operator asks for it; nothing in the merge
// itself reads the journal.
package storage

import (
	"errors"

	"github.com/fediasonin/geomerge/internal/model"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store defines the interface for the snapshot journal
type Store interface {
	RecordSnapshot(snapshot *model.Snapshot) error
	GetSnapshot(id string) (*model.Snapshot, error)
	ListSnapshots(limit int) ([]model.Snapshot, error)
	Close() error
}
