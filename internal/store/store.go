// Package store keeps one table of records per domain, keyed by location.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/i474232898/location-report/internal/location"
)

// Supported backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Row is one stored line: the place it belongs to and the domain value.
// A key may own several rows (news keeps one row per headline).
type Row[R any] struct {
	Key   location.Key
	Value R
}

// Store is the contract every backend satisfies.
//
// Append only writes rows whose key had no rows before the call; rows sharing
// a new key within one batch are all written, in order. It returns how many
// rows were written. Writes to one store are serialized.
type Store[R any] interface {
	LoadAll() ([]Row[R], error)
	Append(rows []Row[R]) (int, error)
	Close() error
}

// Codec turns a value into flat text columns and back.
type Codec[R any] interface {
	Columns() []string
	Encode(v R) ([]string, error)
	Decode(key location.Key, cols []string) (R, error)
}

// Open returns the backend named by backend, storing the domain table under dir.
func Open[R any](backend, dir, domain string, codec Codec[R]) (Store[R], error) {
	switch backend {
	case BackendCSV, "":
		return NewFile(filepath.Join(dir, domain+".csv"), codec), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, domain+".db"), domain, codec)
	case BackendMemory:
		return NewMemory[R](), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// Lookup returns the values stored for key in row order. Matching ignores case.
func Lookup[R any](rows []Row[R], key location.Key) []R {
	want := key.Normalized()
	var out []R
	for _, r := range rows {
		if r.Key.Normalized() == want {
			out = append(out, r.Value)
		}
	}
	return out
}

// Keys returns the set of normalized keys present in rows.
func Keys[R any](rows []Row[R]) map[location.Key]struct{} {
	keys := make(map[location.Key]struct{}, len(rows))
	for _, r := range rows {
		keys[r.Key.Normalized()] = struct{}{}
	}
	return keys
}

// onlyNew filters rows down to those whose key is absent from existing.
func onlyNew[R any](existing map[location.Key]struct{}, rows []Row[R]) []Row[R] {
	out := make([]Row[R], 0, len(rows))
	for _, r := range rows {
		if _, ok := existing[r.Key.Normalized()]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}
