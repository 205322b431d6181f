package store

import (
	"log"
)

// KV is a closable key/value store backing the dashboard's persisted state.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Open selects the backend for path: empty or ":memory:" keeps values in
// memory, anything else is a sqlite file.
func Open(path string) (KV, error) {
	if path == "" || path == ":memory:" {
		log.Println("INFO: store: using in-memory backend")
		return NewMemoryStore(), nil
	}
	log.Printf("INFO: store: using sqlite at %s", path)
	return NewSQLite(path)
}
