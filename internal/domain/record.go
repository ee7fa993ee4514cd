package domain

import (
	"strings"
	"time"
)

// Kind is the coarse category label of a record.
// The vocabulary is open-ended: composite labels such as "Barcode: UPC-A"
// are valid and matched by substring.
type Kind string

const (
	KindWebsite       Kind = "Website"
	KindText          Kind = "Text"
	KindEmail         Kind = "Email"
	KindPhone         Kind = "Phone Number"
	KindSMS           Kind = "SMS"
	KindContact       Kind = "Contact"
	KindWifi          Kind = "Wi-Fi"
	KindGeo           Kind = "Geo Location"
	KindCalendarEvent Kind = "Calendar Event"
	KindBarcode       Kind = "Barcode"
	KindClipboard     Kind = "Clipboard"
)

// Contains reports whether the kind label contains sub (case-sensitive).
func (k Kind) Contains(sub string) bool {
	return strings.Contains(string(k), sub)
}

// Record sources
const (
	SourceScan   = "scan"
	SourceCreate = "create"
	SourceImport = "import"
)

// Removal origins
const (
	RemovedByUser   = "user"
	RemovedByImport = "import"
)

// Record represents one scanned or created code in the history.
//
// Kind and Payload never change after creation. Removal produces a
// disabled copy (see Removed) instead of mutating the stored value.
type Record struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// API-created records use a UUID, imported ones a content hash.
	ID string

	// Kind is the category label, e.g. "Wi-Fi" or "Barcode: EAN-13".
	Kind Kind

	// Payload is the raw text exactly as scanned or generated.
	// Example: WIFI:S:MyHomeNetwork;T:WPA;P:secret;;
	Payload string

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// Source is one of scan, create or import.
	Source string

	// CreatedAt is the scan or generation time, used for ordering only.
	CreatedAt time.Time

	// ─────────────────────────────
	// Liveness & cleanup
	// ─────────────────────────────

	// UpdatedAt is set when the record is removed from history.
	UpdatedAt time.Time

	// Disabled marks a record as removed.
	// It is garbage-collected after the retention threshold.
	Disabled bool

	// RemovedBy is who disabled the record: user or import.
	RemovedBy string
}

// Removed returns a disabled copy of the record stamped at now.
func (r Record) Removed(now time.Time, by string) *Record {
	r.Disabled = true
	r.RemovedBy = by
	r.UpdatedAt = now
	return &r
}

// Restored returns an enabled copy of the record stamped at now.
func (r Record) Restored(now time.Time) *Record {
	r.Disabled = false
	r.RemovedBy = ""
	r.UpdatedAt = now
	return &r
}

// IsImportTombstone reports whether r is an imported record the user removed.
// It must outlive garbage collection while the import file lists it.
func (r *Record) IsImportTombstone() bool {
	return r.Disabled && r.Source == SourceImport && r.RemovedBy == RemovedByUser
}
