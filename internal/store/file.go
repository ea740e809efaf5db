package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/i474232898/location-report/internal/location"
)

var keyColumns = []string{"capital", "country_code"}

// File keeps a domain table as a CSV file with a header line. The whole file
// is read on every LoadAll.
type File[R any] struct {
	mu    sync.Mutex
	path  string
	codec Codec[R]
}

// NewFile returns a CSV store at path. The file is created on first Append.
func NewFile[R any](path string, codec Codec[R]) *File[R] {
	return &File[R]{path: path, codec: codec}
}

func (f *File[R]) header() []string {
	return append(slices.Clone(keyColumns), f.codec.Columns()...)
}

// LoadAll parses the file. A missing or empty file yields no rows.
func (f *File[R]) LoadAll() ([]Row[R], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File[R]) load() ([]Row[R], error) {
	fh, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = len(f.header())

	head, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", f.path, err)
	}
	if !slices.Equal(head, f.header()) {
		return nil, fmt.Errorf("unexpected header in %s: %v", f.path, head)
	}

	var rows []Row[R]
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.path, err)
		}

		key := location.Key{Capital: rec[0], CountryCode: rec[1]}
		v, err := f.codec.Decode(key, rec[len(keyColumns):])
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("decoding %s line %d: %w", f.path, line, err)
		}
		rows = append(rows, Row[R]{Key: key, Value: v})
	}
	return rows, nil
}

// Append writes rows for keys not present in the file yet. Every row is
// encoded before anything is written so a bad value never leaves a partial row.
func (f *File[R]) Append(rows []Row[R]) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.load()
	if err != nil {
		return 0, err
	}
	fresh := onlyNew(Keys(existing), rows)
	if len(fresh) == 0 {
		return 0, nil
	}

	records := make([][]string, 0, len(fresh)+1)
	if len(existing) == 0 {
		records = append(records, f.header())
	}
	for _, row := range fresh {
		cols, err := f.codec.Encode(row.Value)
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", row.Key, err)
		}
		records = append(records, append([]string{row.Key.Capital, row.Key.CountryCode}, cols...))
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return 0, fmt.Errorf("creating store dir: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if len(existing) == 0 {
		// A header-only or empty file is rewritten from scratch.
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	fh, err := os.OpenFile(f.path, flags, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening %s for append: %w", f.path, err)
	}

	w := csv.NewWriter(fh)
	if err := w.WriteAll(records); err != nil {
		fh.Close()
		return 0, fmt.Errorf("writing %s: %w", f.path, err)
	}
	if err := fh.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", f.path, err)
	}
	return len(fresh), nil
}

func (f *File[R]) Close() error { return nil }
