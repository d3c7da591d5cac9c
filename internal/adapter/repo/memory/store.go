package memory

import (
	"sync"

	"bunnylords/internal/app/ports"
	"bunnylords/internal/domain/keep"
)

// Store backs every memory repo. mu guards the maps on every repo call so
// reads and writes outside a transaction stay safe; txMu serializes use
// cases the way a database transaction would, so a read-modify-write inside
// RunInTx cannot interleave with another.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	sessions map[string]keep.SessionSnapshot
	reports  map[string]ports.BattleReportRecord
	byOwner  map[string][]string
	events   map[string][]keep.DomainEvent
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]keep.SessionSnapshot),
		reports:  make(map[string]ports.BattleReportRecord),
		byOwner:  make(map[string][]string),
		events:   make(map[string][]keep.DomainEvent),
	}
}
