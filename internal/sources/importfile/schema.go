package importfile

import "time"

// Entry is one history item in the import file.
//
//	- kind: Website
//	  payload: https://example.com
//	  created_at: 2025-05-01T12:00:00Z
type Entry struct {
	Kind      string    `yaml:"kind"`
	Payload   string    `yaml:"payload"`
	CreatedAt time.Time `yaml:"created_at"` // optional, defaults to load time
}

// File is the root of the import YAML: a flat list of entries.
type File []Entry
