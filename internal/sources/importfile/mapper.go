package importfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

// ErrNoValidEntries is returned when the file yields no record
var ErrNoValidEntries = errors.New("no valid entries found in import file")

// Mapper converts import entries to domain records
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new mapper using the wall clock
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// MapRecords converts a File into records with stable IDs.
// Entries with an empty kind or payload are skipped, and so are duplicates.
func (m *Mapper) MapRecords(file File) ([]*domain.Record, error) {
	now := m.now().UTC()
	records := make([]*domain.Record, 0, len(file))
	seen := make(map[string]struct{}, len(file))

	for _, e := range file {
		kind := strings.TrimSpace(e.Kind)
		if kind == "" || e.Payload == "" {
			continue
		}

		id := RecordID(domain.Kind(kind), e.Payload)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		created := e.CreatedAt
		if created.IsZero() {
			created = now
		}

		records = append(records, &domain.Record{
			ID:        id,
			Kind:      domain.Kind(kind),
			Payload:   e.Payload,
			Source:    domain.SourceImport,
			CreatedAt: created,
			UpdatedAt: now,
		})
	}

	if len(records) == 0 {
		return nil, ErrNoValidEntries
	}

	return records, nil
}

// RecordID derives a stable 16 hex char ID from kind and payload, so the same
// entry maps to the same record across reloads.
func RecordID(kind domain.Kind, payload string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
